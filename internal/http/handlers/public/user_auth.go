package public

import (
	"time"

	"github.com/pizzame/backend/internal/http/handlers/shared"
	"github.com/pizzame/backend/internal/http/response"
	"github.com/pizzame/backend/internal/service"

	"github.com/gin-gonic/gin"
)

const dateOfBirthLayout = "2006-01-02"

// registerRequest 注册请求体
type registerRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Phone            string `json:"phone"`
	DateOfBirth      string `json:"date_of_birth"`
	MarketingConsent bool   `json:"marketing_consent"`
}

func parseDateOfBirth(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateOfBirthLayout, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// Register 用户注册，注册成功直接签发令牌并合并游客购物车
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	dob, err := parseDateOfBirth(req.DateOfBirth)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid date_of_birth, expect YYYY-MM-DD", err)
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		DateOfBirth:      dob,
		MarketingConsent: req.MarketingConsent,
		SessionKey:       c.GetHeader(shared.SessionKeyHeader),
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "register failed")
		return
	}
	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// loginRequest 登录请求体
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password, c.GetHeader(shared.SessionKeyHeader))
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeUnauthorized, "login failed")
		return
	}
	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Me 当前用户资料
func (h *Handler) Me(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(userID)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "get profile failed")
		return
	}
	response.Success(c, user)
}

// updateProfileRequest 更新资料请求体，未出现的字段保持不变
type updateProfileRequest struct {
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Phone            *string `json:"phone"`
	DateOfBirth      *string `json:"date_of_birth"`
	MarketingConsent *bool   `json:"marketing_consent"`
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	input := service.ProfileInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Phone:            req.Phone,
		MarketingConsent: req.MarketingConsent,
	}
	if req.DateOfBirth != nil {
		dob, err := parseDateOfBirth(*req.DateOfBirth)
		if err != nil {
			respondError(c, response.CodeBadRequest, "invalid date_of_birth, expect YYYY-MM-DD", err)
			return
		}
		input.DateOfBirth = dob
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	user, err := h.UserAuthService.UpdateProfile(userID, input)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "update profile failed")
		return
	}
	response.Success(c, user)
}

// changePasswordRequest 修改密码请求体
type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	if err := h.UserAuthService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "change password failed")
		return
	}
	response.Success(c, nil)
}
