package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blogapi/internal/application"
	"blogapi/internal/domain/entity"
	"blogapi/internal/interface/middleware"
	"blogapi/pkg/helpers"
	"blogapi/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// userResponse is the only user shape that leaves the API; the password hash
// has no field here.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *entity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func requestMeta(c *gin.Context) (ip, ua string) {
	return middleware.ClientIP(c), c.GetHeader("User-Agent")
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindStrictJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	ip, ua := requestMeta(c)
	ctx := application.WithRequestMeta(c.Request.Context(), ip, ua)

	u, err := h.Svc.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u), "registered", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		bindError(c, err)
		return
	}
	ip, ua := requestMeta(c)
	ctx := application.WithRequestMeta(c.Request.Context(), ip, ua)

	u, pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		// one message for unknown email and wrong password
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"token":      pair.AccessToken,
		"expires_at": pair.AccessTokenExpiry,
		"user":       toUserResponse(u),
	}, "login successful", gin.H{"refresh_expires_at": pair.RefreshTokenExpiry})
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		response.Error(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, gin.H{
		"token":      pair.AccessToken,
		"expires_at": pair.AccessTokenExpiry,
	}, "token refreshed", gin.H{"refresh_expires_at": pair.RefreshTokenExpiry})
}

// Logout POST /api/auth/logout (auth)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	ip, ua := requestMeta(c)
	h.Svc.Logout(application.WithRequestMeta(c.Request.Context(), ip, ua), uid)
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Me GET /api/auth/me (auth)
func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	u, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u), "profile", nil)
}
