package service

import (
	"errors"
	"testing"

	"github.com/pizzame/backend/internal/config"
	"github.com/pizzame/backend/internal/constants"
	"github.com/pizzame/backend/internal/models"
	"github.com/pizzame/backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setupUserAuthServiceTest(t *testing.T) (*UserAuthService, *CartService, *gorm.DB) {
	t.Helper()
	db := openServiceTestDB(t, "user_auth_service_test")
	cartSvc := NewCartService(
		repository.NewCartRepository(db),
		repository.NewPizzaRepository(db),
		repository.NewPizzaSizeRepository(db),
		repository.NewIngredientRepository(db),
	)
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "user-auth-test-secret"
	cfg.JWT.ExpireHours = 1
	return NewUserAuthService(cfg, repository.NewUserRepository(db), cartSvc), cartSvc, db
}

func TestUserAuthRegisterAndLogin(t *testing.T) {
	svc, _, _ := setupUserAuthServiceTest(t)

	user, token, _, err := svc.Register(RegisterInput{
		Email:     " Anna@Example.COM ",
		Password:  "Password1",
		FirstName: "Anna",
		LastName:  "Rossi",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "anna@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.IsStaff {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Register(RegisterInput{Email: "anna@example.com", Password: "Password1"}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	logged, _, _, err := svc.Login("anna@example.com", "Password1", "")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.LastLoginAt == nil {
		t.Fatalf("expected last_login_at set")
	}

	if _, _, _, err := svc.Login("anna@example.com", "wrong-pass1", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "Password1", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestUserAuthRegisterValidation(t *testing.T) {
	svc, _, _ := setupUserAuthServiceTest(t)

	cases := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"bad email", "not-an-email", "Password1", ErrInvalidInput},
		{"too short", "a@example.com", "Pass1", ErrWeakPassword},
		{"letters only", "b@example.com", "passwordonly", ErrWeakPassword},
		{"digits only", "c@example.com", "12345678", ErrWeakPassword},
	}
	for _, tc := range cases {
		if _, _, _, err := svc.Register(RegisterInput{Email: tc.email, Password: tc.password}); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestUserAuthDisabledUser(t *testing.T) {
	svc, _, db := setupUserAuthServiceTest(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := models.User{Email: "blocked@example.com", PasswordHash: string(hash), Status: constants.UserStatusDisabled}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	if _, _, _, err := svc.Login("blocked@example.com", "Password1", ""); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestUserAuthChangePassword(t *testing.T) {
	svc, _, _ := setupUserAuthServiceTest(t)
	user, _, _, err := svc.Register(RegisterInput{Email: "change@example.com", Password: "Password1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(user.ID, "wrong-old1", "NewPassword2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Password1", "weak"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Password1", "NewPassword2"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login("change@example.com", "NewPassword2", ""); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, _, err := svc.Login("change@example.com", "Password1", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected old password rejected, got %v", err)
	}
}

func TestUserAuthRegisterMergesGuestCart(t *testing.T) {
	svc, cartSvc, db := setupUserAuthServiceTest(t)
	f := createMenuFixture(t, db)

	if _, err := cartSvc.AddItem(CartOwner{SessionKey: "guest-register-1"}, CartItemInput{
		PizzaID:  f.margherita.ID,
		SizeID:   f.large.ID,
		Quantity: 1,
	}); err != nil {
		t.Fatalf("guest add item failed: %v", err)
	}

	user, _, _, err := svc.Register(RegisterInput{
		Email:      "merge@example.com",
		Password:   "Password1",
		SessionKey: "guest-register-1",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	detail, err := cartSvc.Get(CartOwner{UserID: user.ID})
	if err != nil {
		t.Fatalf("get user cart failed: %v", err)
	}
	if len(detail.Items) != 1 {
		t.Fatalf("expected guest cart merged into account, got %d items", len(detail.Items))
	}
}

func TestUserAuthUpdateProfile(t *testing.T) {
	svc, _, _ := setupUserAuthServiceTest(t)
	user, _, _, err := svc.Register(RegisterInput{Email: "profile@example.com", Password: "Password1", FirstName: "Old"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	first := "New"
	consent := true
	updated, err := svc.UpdateProfile(user.ID, ProfileInput{FirstName: &first, MarketingConsent: &consent})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.FirstName != "New" || !updated.MarketingConsent {
		t.Fatalf("unexpected profile: %+v", updated)
	}
	// 未提供的字段保持不变
	if updated.Email != "profile@example.com" {
		t.Fatalf("expected email untouched, got %q", updated.Email)
	}

	if _, err := svc.UpdateProfile(9999, ProfileInput{FirstName: &first}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
