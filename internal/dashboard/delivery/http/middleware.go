package http

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"stock-forecast-dashboard/internal/dashboard/dto"
	"stock-forecast-dashboard/internal/dashboard/fetch"
	"stock-forecast-dashboard/internal/dashboard/service"
	"stock-forecast-dashboard/internal/dashboard/session"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/common"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/labstack/echo/v4"
)

const pagesKey = "pages"

// PagesFactory creates the page controllers of a new browser session.
type PagesFactory func() *service.Pages

// RequestContext copies the echo request id into the request context so that
// service logs carry it.
func RequestContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				req := c.Request()
				c.SetRequest(req.WithContext(logger.ContextWithRequestID(req.Context(), id)))
			}
			return next(c)
		}
	}
}

// SessionMiddleware binds the browser session named by the session cookie to
// the request, creating a new one when the cookie is missing or expired.
func SessionMiddleware(store *session.Store, secureCookie bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(common.SessionCookieName); err == nil {
				id = cookie.Value
			}

			id, provider, created := store.GetOrCreate(id)
			if created {
				c.SetCookie(&http.Cookie{
					Name:     common.SessionCookieName,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(common.ContextKeySessionID, id)
			c.Set(common.ContextKeyProvider, provider)
			return next(c)
		}
	}
}

// RequireAuth stops unauthenticated requests before any protected fetch.
// Pages are redirected to the login page, API calls get a 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p := providerFrom(c); p != nil && p.GetSession() != nil {
				return next(c)
			}
			if isAPIRequest(c) {
				return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: fetch.MessageAuth, Kind: string(fetch.KindAuthRequired)})
			}
			return c.Redirect(http.StatusSeeOther, "/login?next="+url.QueryEscape(c.Request().URL.RequestURI()))
		}
	}
}

func isAPIRequest(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

func providerFrom(c echo.Context) *session.Provider {
	p, _ := c.Get(common.ContextKeyProvider).(*session.Provider)
	return p
}

func sessionIDFrom(c echo.Context) string {
	id, _ := c.Get(common.ContextKeySessionID).(string)
	return id
}

// accessToken reads the current token right before a protected call so a
// refreshed token is always used.
func accessToken(c echo.Context) string {
	if p := providerFrom(c); p != nil {
		return p.AccessToken()
	}
	return ""
}

// ownerFrom keys per-user data by the signed-in user, or by the browser
// session for anonymous visitors.
func ownerFrom(c echo.Context) string {
	if p := providerFrom(c); p != nil {
		if s := p.GetSession(); s != nil && s.User.ID != "" {
			return s.User.ID
		}
	}
	return common.AnonOwnerPrefix + sessionIDFrom(c)
}

// pagesFrom returns the page controllers of the browser session, creating
// them on first use. They are torn down when the session is closed, and the
// accuracy page is cleared on sign-out.
func pagesFrom(c echo.Context, newPages PagesFactory) *service.Pages {
	p := providerFrom(c)
	if p == nil {
		return newPages()
	}
	v := p.Scoped(pagesKey, func() io.Closer {
		pages := newPages()
		p.OnChange(func(event session.Event, _ *entity.Session) {
			if event == session.EventSignedOut {
				pages.Accuracy.Clear()
			}
		})
		return pages
	})
	return v.(*service.Pages)
}

func errorResponse(f *fetch.Failure) dto.ErrorResponse {
	if f == nil {
		return dto.ErrorResponse{Error: "Something went wrong. Please try again."}
	}
	return dto.ErrorResponse{Error: f.Message, Kind: string(f.Kind)}
}

// statusFor maps a failure to the HTTP status of a JSON API response.
func statusFor(f *fetch.Failure) int {
	if f == nil {
		return http.StatusInternalServerError
	}
	switch f.Kind {
	case fetch.KindInput:
		return http.StatusBadRequest
	case fetch.KindNotFound:
		return http.StatusNotFound
	case fetch.KindConflict:
		return http.StatusConflict
	case fetch.KindAuthRequired:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
