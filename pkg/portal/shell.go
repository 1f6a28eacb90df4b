package portal

import (
	"context"
	"errors"
	"sync"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/models"
)

const msgLoginFailed = "Login failed. Please try again."

type ShellState string

const (
	ShellLoading   ShellState = "loading"
	ShellLogin     ShellState = "login"
	ShellDashboard ShellState = "dashboard"
)

// Authenticator is the part of Client the shell needs.
type Authenticator interface {
	Login(ctx context.Context, code, pin string) (*models.DriverIdentity, error)
	AuthByToken(ctx context.Context, token string) (*models.DriverIdentity, error)
}

// Shell decides whether the driver sees the login form or the dashboard.
// The identity lives in memory only.
type Shell struct {
	auth Authenticator
	log  logger.ILogger

	mu      sync.Mutex
	state   ShellState
	driver  *models.DriverIdentity
	message string
}

func NewShell(auth Authenticator, log logger.ILogger) *Shell {
	return &Shell{auth: auth, log: log, state: ShellLoading}
}

// Resolve handles the entry point: a magic link, a bare token, or nothing.
func (s *Shell) Resolve(ctx context.Context, entry string) ShellState {
	token := TokenFromLink(entry)
	if token == "" {
		s.set(ShellLogin, nil, "")
		return ShellLogin
	}

	driver, err := s.auth.AuthByToken(ctx, token)
	if err != nil {
		s.log.Info("magic link rejected", logger.Error(err))
		s.set(ShellLogin, nil, "")
		return ShellLogin
	}
	s.set(ShellDashboard, driver, "")
	return ShellDashboard
}

func (s *Shell) Login(ctx context.Context, code, pin string) error {
	driver, err := s.auth.Login(ctx, code, pin)
	if err != nil {
		msg := msgLoginFailed
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			msg = apiErr.Message
		}
		s.set(ShellLogin, nil, msg)
		return err
	}
	s.set(ShellDashboard, driver, "")
	return nil
}

func (s *Shell) Logout() {
	s.set(ShellLogin, nil, "")
}

func (s *Shell) State() ShellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Shell) Driver() *models.DriverIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.driver
}

// Message is the last login error shown above the form.
func (s *Shell) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Shell) set(state ShellState, driver *models.DriverIdentity, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.driver = driver
	s.message = message
}
