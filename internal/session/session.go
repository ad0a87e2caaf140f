// Package session owns the client's authentication state: who is logged in,
// which bearer token is in use, and whether the startup restore has settled.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"auth-panel/internal/domain"
	"auth-panel/internal/metrics"
)

// ErrSessionChanged reports a user fetch whose reply arrived after the token
// it was made with had been replaced or removed.
var ErrSessionChanged = errors.New("session changed during request")

// Gateway is the remote auth API.
type Gateway interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.AccessToken, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	CurrentUser(ctx context.Context) (*domain.User, error)
}

// TokenStore holds the bearer token and its durable copy.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Token() string
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// State is an immutable snapshot of the session.
type State struct {
	User          *domain.User
	Token         string
	Initializing  bool
	Authenticated bool
}

// Service is the single source of truth for "who is logged in".
type Service struct {
	gateway Gateway
	tokens  TokenStore
	logger  *logrus.Logger

	mu           sync.RWMutex
	user         *domain.User
	initializing bool

	startOnce sync.Once
	readyOnce sync.Once
	ready     chan struct{}
}

func NewService(gateway Gateway, tokens TokenStore, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{
		gateway:      gateway,
		tokens:       tokens,
		logger:       logger,
		initializing: true,
		ready:        make(chan struct{}),
	}
}

// Snapshot returns the current state. Authenticated holds iff both a user and
// a token are present.
func (s *Service) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Service) snapshotLocked() State {
	st := State{Token: s.tokens.Token(), Initializing: s.initializing}
	if s.user != nil {
		u := *s.user
		if u.FullName != nil {
			name := *u.FullName
			u.FullName = &name
		}
		st.User = &u
	}
	st.Authenticated = st.User != nil && st.Token != ""
	return st
}

// Ready is closed once the startup restore has settled.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Start restores a previously persisted session. It runs at most once per
// Service; initializing is cleared exactly once, after the attempt settles,
// whatever its outcome. Errors other than 401 are logged and swallowed.
func (s *Service) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		defer s.finishInitializing()

		token, err := s.tokens.Load(ctx)
		if err != nil {
			s.logger.Warnf("session restore: %v", err)
			return
		}
		if token == "" {
			s.logger.Debug("session restore: no stored token")
			return
		}

		user, err := s.loadUser(ctx, "restore")
		if err != nil {
			s.logger.WithField("unauthorized", errors.Is(err, domain.ErrUnauthorized)).
				Infof("session restore failed: %v", err)
			return
		}
		s.logger.WithField("username", user.Username).Info("session restored")
	})
}

func (s *Service) finishInitializing() {
	s.readyOnce.Do(func() {
		s.mu.Lock()
		s.initializing = false
		s.publishLocked("initialized")
		s.mu.Unlock()
		close(s.ready)
	})
}

// Login exchanges credentials for a token, stores it and loads the user.
// Errors are returned to the caller untouched; nothing is retried.
func (s *Service) Login(ctx context.Context, creds domain.Credentials) error {
	token, err := s.gateway.Login(ctx, creds)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = s.tokens.Set(ctx, token.AccessToken)
	s.publishLocked("token")
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if _, err := s.loadUser(ctx, "login"); err != nil {
		return err
	}
	s.logger.WithField("username", creds.Username).Info("logged in")
	return nil
}

// Register creates the account and then logs in with the same credentials.
func (s *Service) Register(ctx context.Context, reg domain.Registration) error {
	if _, err := s.gateway.Register(ctx, reg); err != nil {
		return err
	}
	s.logger.WithField("username", reg.Username).Info("account registered")
	return s.Login(ctx, domain.Credentials{Username: reg.Username, Password: reg.Password})
}

// Logout forgets the token and the user. No request is sent.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := ""
	if s.user != nil {
		username = s.user.Username
	}
	s.user = nil
	err := s.tokens.Clear(ctx)
	s.publishLocked("logout")
	if err != nil {
		return err
	}
	s.logger.WithField("username", username).Info("logged out")
	return nil
}

// Refresh re-fetches the current user. Without a token it does nothing.
func (s *Service) Refresh(ctx context.Context) error {
	if s.tokens.Token() == "" {
		return nil
	}
	_, err := s.loadUser(ctx, "refresh")
	return err
}

// loadUser fetches the user for the installed token. A 401 clears token and
// user together before the error is returned. A reply is applied only while
// the token it was requested with is still installed; otherwise it is dropped
// and ErrSessionChanged is returned.
func (s *Service) loadUser(ctx context.Context, reason string) (*domain.User, error) {
	sent := s.tokens.Token()
	user, err := s.gateway.CurrentUser(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tokens.Token() != sent {
		return nil, fmt.Errorf("%s: %w", reason, ErrSessionChanged)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.user = nil
			if clearErr := s.tokens.Clear(ctx); clearErr != nil {
				s.logger.Warnf("%s: %v", reason, clearErr)
			}
			s.publishLocked(reason + "_unauthorized")
		}
		return nil, fmt.Errorf("%s: fetch current user: %w", reason, err)
	}

	s.user = user
	s.publishLocked(reason)
	return user, nil
}

func (s *Service) publishLocked(reason string) {
	st := s.snapshotLocked()
	if st.Authenticated {
		metrics.SessionAuthenticated.Set(1)
	} else {
		metrics.SessionAuthenticated.Set(0)
	}
	metrics.SessionTransitionsTotal.WithLabelValues(reason).Inc()
	s.logger.WithFields(logrus.Fields{
		"reason":        reason,
		"authenticated": st.Authenticated,
		"initializing":  st.Initializing,
	}).Debug("session state changed")
}
