package handler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/welfarelink/pwd-records-api/internal/config"
	"github.com/welfarelink/pwd-records-api/internal/model"
	"github.com/welfarelink/pwd-records-api/internal/queue"
	"github.com/welfarelink/pwd-records-api/internal/repository"
	"github.com/welfarelink/pwd-records-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Resets *repository.PasswordResetRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, p *repository.PasswordResetRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Resets: p}
}

// ----- DTOs -----

type loginReq struct {
	Identifier string `json:"identifier"` // username or email
	Password   string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64     `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}
type authData struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// Login verifies username-or-email plus password and returns a token pair.
// Both a wrong identifier and a wrong password produce the same message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	identifier := strings.ToLower(strings.TrimSpace(req.Identifier))
	if identifier == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "identifier and password are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Authenticate(ctx, identifier, req.Password)
	if err != nil {
		return repoError(c, err, "user not found")
	}
	return h.issuePair(c, u, http.StatusOK)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return fail(c, http.StatusBadRequest, "refresh_token required")
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := reqContext(c)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return repoError(c, err, "user not found")
	}
	return h.issuePair(c, u, http.StatusOK)
}

// Logout revokes the supplied refresh token, or with none in the body all
// tokens of the authenticated user.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	_ = c.Bind(&req)
	token := strings.TrimSpace(req.RefreshToken)

	ctx, cancel := reqContext(c)
	defer cancel()

	if token != "" {
		hash := utils.HashRefreshRaw(token)
		if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
			return fail(c, http.StatusUnauthorized, "invalid refresh token")
		}
		if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
			return fail(c, http.StatusInternalServerError, "logout failed")
		}
		return successMsg(c, http.StatusOK, "logged out", nil)
	}

	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "provide refresh_token or authenticate")
	}
	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return fail(c, http.StatusInternalServerError, "logout failed")
	}
	return successMsg(c, http.StatusOK, "logged out everywhere", nil)
}

// RequestReset generates a one-time code for the account behind the email
// and hands it to the notification queue. The response never reveals
// whether the email is registered.
func (h *AuthHandler) RequestReset(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	email, ok := trimmed(req.Email)
	if !ok {
		return fail(c, http.StatusBadRequest, "email is required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	const sent = "if the email is registered, a reset code has been sent"

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		// Same response as the success path; do not leak registration state.
		return successMsg(c, http.StatusOK, sent, nil)
	}
	code, exp, err := h.Resets.Create(ctx, u.ID, time.Duration(h.Cfg.OTPTTLMin)*time.Minute)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not create reset code")
	}

	ev := queue.PasswordResetRequestedEvent{
		UserID:      u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Code:        code,
		ExpiresAt:   exp.Format(time.RFC3339),
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue.PublishPasswordResetRequested(ctx, ev); err != nil {
		// Delivery is best-effort; the code stays valid for a retry.
		log.Printf("auth: reset notification publish failed for user %d: %v", u.ID, err)
	}
	return successMsg(c, http.StatusOK, sent, nil)
}

// VerifyOTP checks that a code exists, is unexpired and unconsumed without
// spending it, so the front-end can gate the new-password form.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	code, ok := trimmed(req.Code)
	if !ok {
		return fail(c, http.StatusBadRequest, "code is required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if _, err := h.Resets.Verify(ctx, code); err != nil {
		return repoError(c, err, "code not found")
	}
	return successMsg(c, http.StatusOK, "code verified", nil)
}

// ResetPassword consumes a valid code and replaces the owner's password.
// A consumed code fails on any further use, even within its TTL.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req struct {
		Code        string `json:"code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	code, ok := trimmed(req.Code)
	if !ok || req.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "code and new_password are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Resets.ResetPassword(ctx, code, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return repoError(c, err, "code not found")
	}
	return successMsg(c, http.StatusOK, "password has been reset", nil)
}

// UpdatePassword changes the authenticated user's password after the
// current one verifies.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "current_password and new_password are required")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, uid, req.CurrentPassword, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return repoError(c, err, "user not found")
	}
	return successMsg(c, http.StatusOK, "password updated", nil)
}

// Me returns the authenticated user's public fields.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return repoError(c, err, "user not found")
	}
	return success(c, http.StatusOK, userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role})
}

func (h *AuthHandler) issuePair(c echo.Context, u model.User, code int) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not issue access token")
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not issue refresh token")
	}
	if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return fail(c, http.StatusInternalServerError, "could not persist session")
	}
	return success(c, code, authData{
		User:    userPart{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw goes back to the client
	})
}
