package cache

import (
	"context"
	"fmt"
	"time"
)

// guestCartState 匿名购物车会话状态
type guestCartState struct {
	SessionKey string    `json:"session_key"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

func guestCartKey(sessionKey string) string {
	return fmt.Sprintf("guest_cart:%s", sessionKey)
}

// TouchGuestCart 续期匿名购物车会话
func TouchGuestCart(ctx context.Context, sessionKey string, ttl time.Duration) error {
	if sessionKey == "" {
		return nil
	}
	return SetJSON(ctx, guestCartKey(sessionKey), guestCartState{
		SessionKey: sessionKey,
		LastSeenAt: time.Now(),
	}, ttl)
}

// GuestCartAlive 判断匿名购物车会话是否仍有效。
// 缓存未启用时视为有效，由数据库数据兜底。
func GuestCartAlive(ctx context.Context, sessionKey string) (bool, error) {
	if !Enabled() || sessionKey == "" {
		return true, nil
	}
	var state guestCartState
	return GetJSON(ctx, guestCartKey(sessionKey), &state)
}

// DropGuestCart 结束匿名购物车会话
func DropGuestCart(ctx context.Context, sessionKey string) error {
	if sessionKey == "" {
		return nil
	}
	return Del(ctx, guestCartKey(sessionKey))
}

func loginFailKey(email string) string {
	return fmt.Sprintf("login_fail:%s", email)
}

// RecordLoginFailure 记录一次登录失败，返回窗口内累计次数
func RecordLoginFailure(ctx context.Context, email string, window time.Duration) (int64, error) {
	return Incr(ctx, loginFailKey(email), window)
}

// ResetLoginFailures 登录成功后清零失败计数
func ResetLoginFailures(ctx context.Context, email string) error {
	return Del(ctx, loginFailKey(email))
}

// LoginFailureCount 读取窗口内失败次数
func LoginFailureCount(ctx context.Context, email string) (int64, error) {
	if !Enabled() {
		return 0, nil
	}
	var count int64
	found, err := GetJSON(ctx, loginFailKey(email), &count)
	if err != nil || !found {
		return 0, err
	}
	return count, nil
}
