package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"blogapi/internal/domain/entity"
	repo "blogapi/internal/domain/repository"
	"blogapi/pkg/helpers"
	"blogapi/pkg/mailer"
)

// AuthService turns raw credentials into verified identity and bearer tokens.
type AuthService struct {
	Users  repo.UserRepository
	Audit  repo.AuditRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher

	AppName     string
	MailEnabled bool
}

func NewAuthService(users repo.UserRepository, audit repo.AuditRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, appName string, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:       users,
		Audit:       audit,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		Pub:         pub,
		AppName:     appName,
		MailEnabled: mailEnabled,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a user with a bcrypt-hashed password. The raw password is
// never persisted or logged. Duplicate emails fail with ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*entity.User, error) {
	if err := requiredFields(map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}); err != nil {
		return nil, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, Email: email, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.auditEvent(ctx, u.ID, u.Email, "register", nil)

	if s.Pub != nil && s.MailEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data:     map[string]any{"Username": u.Username, "Email": u.Email, "AppName": s.AppName},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to enqueue welcome email")
		}
	}
	return u, nil
}

// Authenticate validates email/password and returns the user without issuing
// tokens. Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate refresh token failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"username":   u.Username,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, s.JWT.RefreshTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login authenticates and issues tokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		s.auditEvent(ctx, "", email, "login_failed", nil)
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	s.auditEvent(ctx, u.ID, u.Email, "login", nil)
	return u, pair, nil
}

// Refresh rotates the token pair from a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", ErrInvalidCredentials
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout removes the server-side session record; issued tokens expire on
// their own.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
	s.auditEvent(ctx, userID, "", "logout", nil)
}

// GetProfile returns the user for an authenticated id.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *AuthService) auditEvent(ctx context.Context, userID, email, action string, metadata map[string]any) {
	if s.Audit == nil {
		return
	}
	e := repo.AuditEntry{UserID: userID, Email: email, Action: action, Metadata: metadata}
	if ip, ok := ctx.Value(ctxKeyIP{}).(string); ok {
		e.IP = ip
	}
	if ua, ok := ctx.Value(ctxKeyUserAgent{}).(string); ok {
		e.UserAgent = ua
	}
	if err := s.Audit.Insert(ctx, e); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("action", action).Warn("audit insert failed")
	}
}

type (
	ctxKeyIP        struct{}
	ctxKeyUserAgent struct{}
)

// WithRequestMeta attaches client ip/user-agent for audit entries.
func WithRequestMeta(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyIP{}, ip)
	return context.WithValue(ctx, ctxKeyUserAgent{}, userAgent)
}
