package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/internal/dashboard/session"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

const (
	msgInvalidCredentials   = "Invalid email or password."
	msgAuthUnavailable      = "Sign in is unavailable right now. Please try again."
	msgConfirmationRequired = "Check your email to confirm your account, then sign in."
)

// AuthHandler handles sign in, sign up and sign out.
type AuthHandler struct {
	sessions *session.Store
	market   service.MarketService
	sidebar  service.SidebarService
	logger   *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Store, market service.MarketService, sidebar service.SidebarService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, market: market, sidebar: sidebar, logger: logger}
}

// RegisterRoutes registers the auth pages to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/login", h.LoginPage)
	g.POST("/login", h.Login)
	g.GET("/signup", h.SignUpPage)
	g.POST("/signup", h.SignUp)
	g.POST("/logout", h.Logout)
}

// RegisterAPIRoutes registers the session endpoint to the API group.
func (h *AuthHandler) RegisterAPIRoutes(g *echo.Group) {
	g.GET("/session", h.Session)
}

// LoginPage renders the sign in form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	if sessionResponse(c).Authenticated {
		return c.Redirect(http.StatusSeeOther, safeRedirect(c.QueryParam("next")))
	}
	data := h.page(c, "Sign in")
	data.Form.Next = c.QueryParam("next")
	return c.Render(http.StatusOK, "login", data)
}

// Login exchanges the submitted credentials for a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var form dto.CredentialsForm
	if err := c.Bind(&form); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, form, msgInvalidCredentials)
	}
	form.Email = strings.TrimSpace(form.Email)

	if _, err := providerFrom(c).SignIn(c.Request().Context(), form.Email, form.Password); err != nil {
		status, msg := authFailure(err)
		h.logger.WarnContext(c.Request().Context(), "Sign in failed", logger.ErrorField(err))
		return h.renderLogin(c, status, form, msg)
	}
	return c.Redirect(http.StatusSeeOther, safeRedirect(form.Next))
}

// SignUpPage renders the registration form.
func (h *AuthHandler) SignUpPage(c echo.Context) error {
	return c.Render(http.StatusOK, "signup", h.page(c, "Sign up"))
}

// SignUp registers a new account. When the provider asks for email
// confirmation the user is sent to the login page with a notice.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var form dto.CredentialsForm
	if err := c.Bind(&form); err != nil {
		data := h.page(c, "Sign up")
		data.Error = msgInvalidCredentials
		return c.Render(http.StatusBadRequest, "signup", data)
	}
	form.Email = strings.TrimSpace(form.Email)

	_, err := providerFrom(c).SignUp(c.Request().Context(), form.Email, form.Password)
	switch {
	case err == nil:
		return c.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, repository.ErrConfirmationRequired):
		data := h.page(c, "Sign in")
		data.Form.Email = form.Email
		data.Notice = msgConfirmationRequired
		return c.Render(http.StatusOK, "login", data)
	default:
		status, msg := authFailure(err)
		h.logger.WarnContext(c.Request().Context(), "Sign up failed", logger.ErrorField(err))
		data := h.page(c, "Sign up")
		data.Form.Email = form.Email
		data.Error = msg
		return c.Render(status, "signup", data)
	}
}

// Logout ends the session. The local session is cleared even when the
// provider could not be reached, and the browser session is dropped so the
// next request starts under a fresh id.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := providerFrom(c).SignOut(c.Request().Context()); err != nil {
		h.logger.WarnContext(c.Request().Context(), "Sign out revoke failed", logger.ErrorField(err))
	}
	h.sessions.Delete(sessionIDFrom(c))
	return c.Redirect(http.StatusSeeOther, "/")
}

// Session godoc
// @Summary Current session
// @Description Reports whether the browser session is signed in
// @Tags session
// @Produce  json
// @Success 200 {object} dto.SessionResponse
// @Router /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, sessionResponse(c))
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, form dto.CredentialsForm, msg string) error {
	data := h.page(c, "Sign in")
	data.Form = dto.CredentialsForm{Email: form.Email, Next: form.Next}
	data.Error = msg
	return c.Render(status, "login", data)
}

func (h *AuthHandler) page(c echo.Context, title string) PageData {
	return PageData{
		Title:   title,
		Session: sessionResponse(c),
		Market:  h.market.Status(),
		Sidebar: h.sidebar.Quotes(c.Request().Context(), ownerFrom(c)),
	}
}

// authFailure maps an auth provider error to a status and a message. The
// provider's own message is shown for rejected credentials.
func authFailure(err error) (int, string) {
	var authErr *repository.AuthError
	if errors.As(err, &authErr) && authErr.StatusCode < http.StatusInternalServerError {
		if authErr.Message != "" {
			return http.StatusUnauthorized, authErr.Message
		}
		return http.StatusUnauthorized, msgInvalidCredentials
	}
	return http.StatusBadGateway, msgAuthUnavailable
}

// safeRedirect keeps redirects on this site. Anything that is not a local
// path falls back to the dashboard.
func safeRedirect(target string) string {
	if target == "" {
		return "/"
	}
	u, err := url.Parse(target)
	if err != nil || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
