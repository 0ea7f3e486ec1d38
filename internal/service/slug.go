package service

import (
	"fmt"
	"strings"
	"unicode"
)

// slugRetryLimit 写入冲突后追加后缀的最大尝试次数
const slugRetryLimit = 20

// slugify 将名称转为 URL 友好的 slug
func slugify(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if r > unicode.MaxASCII {
				continue
			}
			b.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_':
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "item"
	}
	return slug
}

// candidateSlug 第 n 次尝试的候选 slug：base、base-1、base-2……
func candidateSlug(base string, attempt int) string {
	if attempt == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, attempt)
}

// isUniqueViolation 判断是否为唯一约束冲突
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

// createWithUniqueSlug 乐观写入：直接尝试候选 slug，唯一约束冲突则追加
// 数字后缀重试，重试耗尽返回 ErrSlugConflict
func createWithUniqueSlug(name string, setSlug func(slug string), create func() error) error {
	base := slugify(name)
	for attempt := 0; attempt < slugRetryLimit; attempt++ {
		setSlug(candidateSlug(base, attempt))
		err := create()
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
	}
	return ErrSlugConflict
}
