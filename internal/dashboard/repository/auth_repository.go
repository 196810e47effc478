package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stock-forecast-dashboard/internal/dashboard/config"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v4"
)

// ErrConfirmationRequired is returned by SignUp when the provider created the
// account but will not issue a session until the email is confirmed.
var ErrConfirmationRequired = errors.New("email confirmation required")

// AuthError is a rejection from the auth provider.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth provider: status %d: %s", e.StatusCode, e.Message)
}

// AuthRepository talks to the hosted auth service.
type AuthRepository interface {
	SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error)
	SignUp(ctx context.Context, email, password string) (*entity.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	// Sign-up without auto-confirm returns the user object at top level.
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e authErrorResponse) text() string {
	for _, s := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

type authRepository struct {
	client *resty.Client
	log    *logger.Logger
	now    func() time.Time
}

// NewAuthRepository creates a client for a GoTrue compatible auth service.
func NewAuthRepository(cfg config.Auth, log *logger.Logger) AuthRepository {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")+"/auth/v1").
		SetTimeout(timeout).
		SetHeader("apikey", cfg.AnonKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &authRepository{client: client, log: log, now: time.Now}
}

func (r *authRepository) SignInWithPassword(ctx context.Context, email, password string) (*entity.Session, error) {
	return r.token(ctx, "password", map[string]string{"email": email, "password": password})
}

func (r *authRepository) RefreshSession(ctx context.Context, refreshToken string) (*entity.Session, error) {
	return r.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (r *authRepository) SignUp(ctx context.Context, email, password string) (*entity.Session, error) {
	var out tokenResponse
	var fail authErrorResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		SetError(&fail).
		Post("/signup")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	if resp.IsError() {
		return nil, &AuthError{StatusCode: resp.StatusCode(), Message: fail.text()}
	}
	if out.AccessToken == "" {
		r.log.InfoContext(ctx, "Sign-up pending email confirmation", logger.StringField("email", email))
		return nil, ErrConfirmationRequired
	}
	return r.toSession(out), nil
}

func (r *authRepository) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}
	var fail authErrorResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetError(&fail).
		Post("/logout")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	// An already expired token cannot be revoked; the local session is
	// cleared regardless.
	if resp.IsError() && resp.StatusCode() != http.StatusUnauthorized {
		return &AuthError{StatusCode: resp.StatusCode(), Message: fail.text()}
	}
	return nil
}

func (r *authRepository) token(ctx context.Context, grantType string, body map[string]string) (*entity.Session, error) {
	var out tokenResponse
	var fail authErrorResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", grantType).
		SetBody(body).
		SetResult(&out).
		SetError(&fail).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}
	if resp.IsError() {
		return nil, &AuthError{StatusCode: resp.StatusCode(), Message: fail.text()}
	}
	if out.AccessToken == "" {
		return nil, &AuthError{StatusCode: resp.StatusCode(), Message: "no access token in response"}
	}
	return r.toSession(out), nil
}

func (r *authRepository) toSession(out tokenResponse) *entity.Session {
	s := &entity.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    TokenExpiry(out.AccessToken),
		User:         entity.User{ID: out.User.ID, Email: out.User.Email},
	}
	if s.User.ID == "" {
		s.User = entity.User{ID: out.ID, Email: out.Email}
	}
	switch {
	case out.ExpiresAt > 0:
		s.ExpiresAt = time.Unix(out.ExpiresAt, 0)
	case s.ExpiresAt.IsZero() && out.ExpiresIn > 0:
		s.ExpiresAt = r.now().Add(time.Duration(out.ExpiresIn) * time.Second)
	}
	return s
}

// TokenExpiry reads the exp claim of a JWT access token without verifying
// its signature; the token is only forwarded, never trusted locally. It
// returns the zero time when the token has no readable exp.
func TokenExpiry(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0)
	case int64:
		return time.Unix(exp, 0)
	}
	return time.Time{}
}
