package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stock-forecast-dashboard/internal/dashboard/config"
	"stock-forecast-dashboard/internal/dashboard/repository"
	"stock-forecast-dashboard/internal/entity"
	"stock-forecast-dashboard/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	mu           sync.Mutex
	signIn       func(email, password string) (*entity.Session, error)
	refresh      func(token string) (*entity.Session, error)
	signOutErr   error
	signedOut    []string
	refreshCalls int32
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) (*entity.Session, error) {
	return f.signIn(email, password)
}

func (f *fakeAuth) SignUp(_ context.Context, email, password string) (*entity.Session, error) {
	return f.signIn(email, password)
}

func (f *fakeAuth) RefreshSession(_ context.Context, token string) (*entity.Session, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	return f.refresh(token)
}

func (f *fakeAuth) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, token)
	return f.signOutErr
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) listen(e Event, _ *entity.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func sessionFor(token string, expiresIn time.Duration) *entity.Session {
	return &entity.Session{
		AccessToken:  token,
		RefreshToken: "refresh-" + token,
		ExpiresAt:    time.Now().Add(expiresIn),
		User:         entity.User{ID: "user-1", Email: "a@b.c"},
	}
}

func TestSignInAndOnChange(t *testing.T) {
	auth := &fakeAuth{signIn: func(string, string) (*entity.Session, error) { return sessionFor("tok-1", time.Hour), nil }}
	p := NewProvider(auth, config.Auth{RefreshMargin: time.Minute}, logger.NewNop())
	defer p.Close()

	rec := &recorder{}
	unsubscribe := p.OnChange(rec.listen)

	assert.Nil(t, p.GetSession())

	s, err := p.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", s.AccessToken)
	assert.Equal(t, "tok-1", p.AccessToken())
	assert.Equal(t, []Event{EventSignedIn}, rec.snapshot())

	// Mutating the returned copy does not touch the provider state.
	s.AccessToken = "changed"
	assert.Equal(t, "tok-1", p.AccessToken())

	unsubscribe()
	unsubscribe()
	require.NoError(t, p.SignOut(context.Background()))
	assert.Equal(t, []Event{EventSignedIn}, rec.snapshot())
	assert.Nil(t, p.GetSession())
	assert.Equal(t, []string{"tok-1"}, auth.signedOut)
}

func TestSignInFailureKeepsSignedOut(t *testing.T) {
	auth := &fakeAuth{signIn: func(string, string) (*entity.Session, error) {
		return nil, &repository.AuthError{StatusCode: http.StatusBadRequest, Message: "Invalid login credentials"}
	}}
	p := NewProvider(auth, config.Auth{}, logger.NewNop())
	defer p.Close()

	_, err := p.SignIn(context.Background(), "a@b.c", "bad")
	require.Error(t, err)
	assert.Nil(t, p.GetSession())
}

func TestExpiredSessionIsNotReturned(t *testing.T) {
	auth := &fakeAuth{signIn: func(string, string) (*entity.Session, error) {
		s := sessionFor("tok-1", time.Hour)
		// Without a refresh token no refresh loop runs.
		s.RefreshToken = ""
		return s, nil
	}}
	p := NewProvider(auth, config.Auth{RefreshMargin: time.Minute}, logger.NewNop())
	defer p.Close()

	_, err := p.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	p.mu.Lock()
	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	p.mu.Unlock()
	assert.Nil(t, p.GetSession())
	assert.Equal(t, "", p.AccessToken())
}

func TestRefreshLoopRenewsToken(t *testing.T) {
	auth := &fakeAuth{
		signIn:  func(string, string) (*entity.Session, error) { return sessionFor("tok-1", 30*time.Millisecond), nil },
		refresh: func(token string) (*entity.Session, error) { return sessionFor("tok-2", time.Hour), nil },
	}
	p := NewProvider(auth, config.Auth{}, logger.NewNop())
	defer p.Close()

	rec := &recorder{}
	p.OnChange(rec.listen)

	_, err := p.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return p.AccessToken() == "tok-2" }, time.Second, 5*time.Millisecond)
	assert.Eventually(t, func() bool {
		events := rec.snapshot()
		return len(events) == 2 && events[1] == EventTokenRefreshed
	}, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 1, atomic.LoadInt32(&auth.refreshCalls))
}

func TestRefreshRejectedSignsOut(t *testing.T) {
	auth := &fakeAuth{
		signIn: func(string, string) (*entity.Session, error) { return sessionFor("tok-1", 20*time.Millisecond), nil },
		refresh: func(string) (*entity.Session, error) {
			return nil, &repository.AuthError{StatusCode: http.StatusBadRequest, Message: "Invalid Refresh Token"}
		},
	}
	p := NewProvider(auth, config.Auth{RefreshMaxElapsed: time.Second}, logger.NewNop())
	defer p.Close()

	rec := &recorder{}
	p.OnChange(rec.listen)

	_, err := p.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		events := rec.snapshot()
		return len(events) == 2 && events[1] == EventSignedOut
	}, time.Second, 5*time.Millisecond)
	assert.Nil(t, p.GetSession())
	// A rejected refresh token is not retried.
	assert.EqualValues(t, 1, atomic.LoadInt32(&auth.refreshCalls))
}

func TestSignOutClearsLocallyWhenRevokeFails(t *testing.T) {
	auth := &fakeAuth{
		signIn:     func(string, string) (*entity.Session, error) { return sessionFor("tok-1", time.Hour), nil },
		signOutErr: errors.New("boom"),
	}
	p := NewProvider(auth, config.Auth{}, logger.NewNop())
	defer p.Close()

	_, err := p.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)

	assert.Error(t, p.SignOut(context.Background()))
	assert.Nil(t, p.GetSession())
}

type closeCounter struct{ n int32 }

func (c *closeCounter) Close() error {
	atomic.AddInt32(&c.n, 1)
	return nil
}

func TestScopedValuesAreClosedWithProvider(t *testing.T) {
	p := NewProvider(&fakeAuth{}, config.Auth{}, logger.NewNop())

	c := &closeCounter{}
	created := 0
	create := func() io.Closer { created++; return c }

	assert.Same(t, c, p.Scoped("prediction", create))
	assert.Same(t, c, p.Scoped("prediction", create))
	assert.Equal(t, 1, created)

	p.Close()
	p.Close()
	assert.EqualValues(t, 1, atomic.LoadInt32(&c.n))
}

func TestScopedCreateMayRegisterListeners(t *testing.T) {
	auth := &fakeAuth{signIn: func(string, string) (*entity.Session, error) { return sessionFor("tok-1", time.Hour), nil }}
	p := NewProvider(auth, config.Auth{}, logger.NewNop())
	defer p.Close()

	rec := &recorder{}
	c := &closeCounter{}
	p.Scoped("pages", func() io.Closer {
		p.OnChange(rec.listen)
		return c
	})

	_, err := p.SignIn(context.Background(), "a@b.c", "pw")
	require.NoError(t, err)
	require.NoError(t, p.SignOut(context.Background()))
	assert.Equal(t, []Event{EventSignedIn, EventSignedOut}, rec.snapshot())
}
