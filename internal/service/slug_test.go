package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Margherita", "margherita"},
		{"Quattro Formaggi", "quattro-formaggi"},
		{"  Spicy  Diavola  ", "spicy-diavola"},
		{"BBQ_Chicken", "bbq-chicken"},
		{"Crème Brûlée", "crme-brle"},
		{"4 Seasons", "4-seasons"},
		{"---", "item"},
		{"", "item"},
	}
	for _, tc := range cases {
		if got := slugify(tc.name); got != tc.want {
			t.Fatalf("slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCandidateSlug(t *testing.T) {
	if got := candidateSlug("margherita", 0); got != "margherita" {
		t.Fatalf("expected margherita, got %q", got)
	}
	if got := candidateSlug("margherita", 1); got != "margherita-1" {
		t.Fatalf("expected margherita-1, got %q", got)
	}
	if got := candidateSlug("margherita", 7); got != "margherita-7" {
		t.Fatalf("expected margherita-7, got %q", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if isUniqueViolation(nil) {
		t.Fatalf("nil error must not be a violation")
	}
	if !isUniqueViolation(errors.New("UNIQUE constraint failed: categories.slug")) {
		t.Fatalf("sqlite unique error not detected")
	}
	if !isUniqueViolation(errors.New(`duplicate key value violates unique constraint "uni_categories_slug"`)) {
		t.Fatalf("postgres duplicate error not detected")
	}
	if isUniqueViolation(errors.New("connection refused")) {
		t.Fatalf("unrelated error misdetected")
	}
}

func TestCreateWithUniqueSlugRetries(t *testing.T) {
	taken := map[string]bool{"margherita": true, "margherita-1": true}
	var current string
	err := createWithUniqueSlug("Margherita",
		func(slug string) { current = slug },
		func() error {
			if taken[current] {
				return fmt.Errorf("UNIQUE constraint failed: pizzas.slug")
			}
			return nil
		},
	)
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if current != "margherita-2" {
		t.Fatalf("expected margherita-2, got %q", current)
	}

	err = createWithUniqueSlug("Margherita",
		func(slug string) { current = slug },
		func() error { return fmt.Errorf("UNIQUE constraint failed: pizzas.slug") },
	)
	if !errors.Is(err, ErrSlugConflict) {
		t.Fatalf("expected ErrSlugConflict when retries exhausted, got %v", err)
	}

	wantErr := errors.New("disk I/O error")
	err = createWithUniqueSlug("Margherita",
		func(slug string) { current = slug },
		func() error { return wantErr },
	)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected non-unique error passthrough, got %v", err)
	}
}
