package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"stock-forecast-dashboard/internal/dashboard/config"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"
	"stock-forecast-dashboard/pkg/utils"

	"github.com/cenkalti/backoff/v4"
)

// Event is an auth state transition reported to OnChange listeners.
type Event string

const (
	EventSignedIn       Event = "SIGNED_IN"
	EventTokenRefreshed Event = "TOKEN_REFRESHED"
	EventSignedOut      Event = "SIGNED_OUT"
)

// Listener receives auth state changes. The session is nil on sign-out.
type Listener func(Event, *entity.Session)

// Provider owns the auth session of one browser session. The token is only
// written by sign-in, sign-out and the refresh loop; readers see a copy.
type Provider struct {
	auth repository.AuthRepository
	cfg  config.Auth
	log  *logger.Logger
	now  func() time.Time

	mu        sync.RWMutex
	session   *entity.Session
	listeners map[int]Listener
	nextID    int
	scoped    map[string]io.Closer
	closed    bool

	refreshCancel context.CancelFunc
	refreshDone   chan struct{}
}

// NewProvider creates a signed-out provider.
func NewProvider(auth repository.AuthRepository, cfg config.Auth, log *logger.Logger) *Provider {
	return &Provider{
		auth:      auth,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		listeners: make(map[int]Listener),
		scoped:    make(map[string]io.Closer),
	}
}

// GetSession returns the live session, or nil when signed out or expired.
func (p *Provider) GetSession() *entity.Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session.Expired(p.now()) {
		return nil
	}
	s := *p.session
	return &s
}

// AccessToken is a shorthand for the token of GetSession, "" when absent.
func (p *Provider) AccessToken() string {
	if s := p.GetSession(); s != nil {
		return s.AccessToken
	}
	return ""
}

// OnChange registers fn and returns a function that removes it.
func (p *Provider) OnChange(fn Listener) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// SignIn exchanges credentials for a session and starts the refresh loop.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	s, err := p.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.establish(s)
	p.log.InfoContext(ctx, "User signed in", logger.StringField("user_id", s.User.ID))
	return p.GetSession(), nil
}

// SignUp registers a new account. When the auth provider requires email
// confirmation it returns repository.ErrConfirmationRequired and the provider
// stays signed out.
func (p *Provider) SignUp(ctx context.Context, email, password string) (*entity.Session, error) {
	s, err := p.auth.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	p.establish(s)
	p.log.InfoContext(ctx, "User signed up", logger.StringField("user_id", s.User.ID))
	return p.GetSession(), nil
}

// SignOut clears the local session and revokes the token upstream. The local
// session is cleared even when revocation fails.
func (p *Provider) SignOut(ctx context.Context) error {
	p.stopRefresh()

	p.mu.Lock()
	prev := p.session
	p.session = nil
	p.mu.Unlock()

	if prev == nil {
		return nil
	}
	p.notify(EventSignedOut, nil)

	if err := p.auth.SignOut(ctx, prev.AccessToken); err != nil {
		p.log.WarnContext(ctx, "Failed to revoke session upstream", logger.ErrorField(err))
		return err
	}
	return nil
}

// Scoped returns the value stored under key, creating it with create on
// first use. Scoped values live as long as the provider and are closed by
// Close. create runs without the lock held and may call back into p.
func (p *Provider) Scoped(key string, create func() io.Closer) io.Closer {
	p.mu.RLock()
	v, ok := p.scoped[key]
	p.mu.RUnlock()
	if ok {
		return v
	}

	created := create()

	p.mu.Lock()
	if v, ok := p.scoped[key]; ok {
		p.mu.Unlock()
		_ = created.Close()
		return v
	}
	if !p.closed {
		p.scoped[key] = created
	}
	p.mu.Unlock()
	return created
}

// Close stops the refresh loop and closes scoped values. It does not revoke
// the token. Close is idempotent.
func (p *Provider) Close() {
	p.stopRefresh()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	scoped := p.scoped
	p.scoped = make(map[string]io.Closer)
	p.listeners = make(map[int]Listener)
	p.mu.Unlock()

	for key, v := range scoped {
		if err := v.Close(); err != nil {
			p.log.Warn("Failed to close session scoped value", logger.StringField("key", key), logger.ErrorField(err))
		}
	}
}

func (p *Provider) establish(s *entity.Session) {
	p.stopRefresh()

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	copied := *s
	p.session = &copied
	p.mu.Unlock()

	p.notify(EventSignedIn, s)
	p.startRefresh()
}

func (p *Provider) notify(event Event, s *entity.Session) {
	p.mu.RLock()
	listeners := make([]Listener, 0, len(p.listeners))
	for _, l := range p.listeners {
		listeners = append(listeners, l)
	}
	p.mu.RUnlock()

	for _, l := range listeners {
		var arg *entity.Session
		if s != nil {
			c := *s
			arg = &c
		}
		l(event, arg)
	}
}

func (p *Provider) startRefresh() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	p.mu.Lock()
	p.refreshCancel = cancel
	p.refreshDone = done
	p.mu.Unlock()

	utils.GoSafe(func() {
		defer close(done)
		p.refreshLoop(ctx)
	})
}

// stopRefresh cancels the refresh loop and waits for it to exit.
func (p *Provider) stopRefresh() {
	p.mu.Lock()
	cancel, done := p.refreshCancel, p.refreshDone
	p.refreshCancel, p.refreshDone = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Provider) refreshLoop(ctx context.Context) {
	for {
		p.mu.RLock()
		current := p.session
		p.mu.RUnlock()
		if current == nil || current.RefreshToken == "" || current.ExpiresAt.IsZero() {
			return
		}

		wait := current.ExpiresAt.Sub(p.now()) - p.cfg.RefreshMargin
		if wait < 0 {
			wait = 0
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		refreshed, err := p.refresh(ctx, current.RefreshToken)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			p.log.Warn("Session refresh failed, signing out", logger.StringField("user_id", current.User.ID), logger.ErrorField(err))
			p.mu.Lock()
			p.session = nil
			p.mu.Unlock()
			p.notify(EventSignedOut, nil)
			return
		}

		p.mu.Lock()
		p.session = refreshed
		p.mu.Unlock()
		p.log.Debug("Session token refreshed", logger.StringField("user_id", refreshed.User.ID))
		p.notify(EventTokenRefreshed, refreshed)
	}
}

// refresh retries transient failures with exponential backoff. A rejection
// of the refresh token by the auth provider is final.
func (p *Provider) refresh(ctx context.Context, refreshToken string) (*entity.Session, error) {
	b := backoff.NewExponentialBackOff()
	if p.cfg.RefreshMaxElapsed > 0 {
		b.MaxElapsedTime = p.cfg.RefreshMaxElapsed
	}

	var refreshed *entity.Session
	operation := func() error {
		s, err := p.auth.RefreshSession(ctx, refreshToken)
		if err != nil {
			var authErr *repository.AuthError
			if errors.As(err, &authErr) && authErr.StatusCode >= http.StatusBadRequest && authErr.StatusCode < http.StatusInternalServerError {
				return backoff.Permanent(err)
			}
			return err
		}
		refreshed = s
		return nil
	}
	notify := func(err error, next time.Duration) {
		p.log.Debug("Retrying session refresh", logger.ErrorField(err), logger.Field("next_retry", next))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, err
	}
	return refreshed, nil
}
