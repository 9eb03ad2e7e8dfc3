// internal/launch/session.go

// Package launch sequences one launch attempt: password lookup, placeholder
// resolution, an optional logon and the detached launch. Progress is reported
// through a Presenter, which must deliver notifications in call order.
package launch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"acsLauncher/internal/credentials"
	apperrors "acsLauncher/internal/error"
	"acsLauncher/internal/models"
	"acsLauncher/internal/placeholder"
	"acsLauncher/internal/process"
)

// Status messages emitted by the orchestrator.
const (
	MsgAuthenticating = "Authenticating..."
	MsgLaunching      = "Launching..."
	MsgCancelled      = "Launch cancelled - no password"
)

// Presenter is the UI side of an attempt. Notify and NotifyError may be called
// from a worker goroutine. PromptPassword blocks the caller until the user
// answers or ctx ends; ok is false when no password was supplied.
type Presenter interface {
	Notify(message string)
	NotifyError(message string)
	PromptPassword(ctx context.Context, system, user string) (password string, persist bool, ok bool)
}

// Runner executes the logon and launch commands.
type Runner interface {
	RunAuthentication(ctx context.Context, command string, timeout time.Duration) process.Outcome
	SpawnDetached(ctx context.Context, command string) process.Outcome
}

// Request is one user action: launch Function on System as User.
type Request struct {
	Settings models.Settings
	System   *models.System
	User     string
	Function *models.Function
}

// Result is the terminal value of an attempt. Err is nil on success and an
// *AppError otherwise.
type Result struct {
	ID      string
	State   State
	Outcome process.Outcome
	Err     error
}

// Session owns the authentication memo shared by the attempts it runs.
type Session struct {
	memo      *AuthMemo
	runner    Runner
	creds     credentials.Store
	presenter Presenter
	logger    zerolog.Logger
}

// NewSession creates a session with an empty memo.
func NewSession(runner Runner, creds credentials.Store, presenter Presenter, logger zerolog.Logger) *Session {
	return &Session{
		memo:      &AuthMemo{},
		runner:    runner,
		creds:     creds,
		presenter: presenter,
		logger:    logger,
	}
}

// Memo exposes the session's authentication memo.
func (s *Session) Memo() *AuthMemo {
	return s.memo
}

// Start runs Launch on a new goroutine. The channel yields exactly one Result.
func (s *Session) Start(ctx context.Context, req Request) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		ch <- s.Launch(ctx, req)
	}()
	return ch
}

// attempt carries the per-launch state and makes sure exactly one terminal
// notification is sent.
type attempt struct {
	session *Session
	machine *machine
	log     zerolog.Logger
}

func (a *attempt) result(out process.Outcome, err error) Result {
	if a.machine.state != Done {
		if terr := a.machine.to(Done); terr != nil && err == nil {
			err = terr
		}
	}
	return Result{ID: a.machine.id, State: a.machine.state, Outcome: out, Err: err}
}

func (a *attempt) succeed(message string) Result {
	a.session.presenter.Notify(message)
	a.log.Info().Str("message", message).Msg("launch attempt finished")
	return a.result(process.Outcome{OK: true, Message: message}, nil)
}

// cancel ends the attempt with a neutral notification.
func (a *attempt) cancel(err *apperrors.AppError) Result {
	a.session.presenter.Notify(err.Message)
	a.log.Info().Msg("launch attempt cancelled")
	return a.result(process.Outcome{Message: err.Message}, err)
}

func (a *attempt) fail(err *apperrors.AppError) Result {
	a.session.presenter.NotifyError(err.Message)
	a.log.Warn().Stringer("type", err.Type).Str("message", err.Message).Msg("launch attempt failed")
	return a.result(process.Outcome{Message: err.Message}, err)
}

func (a *attempt) move(next State) *apperrors.AppError {
	if err := a.machine.to(next); err != nil {
		return apperrors.New(apperrors.ValidationError, "Internal error: "+err.Error(), err)
	}
	return nil
}

// Launch runs one attempt to completion on the calling goroutine. The caller
// must have checked models.HasRequiredFields for the selection already.
func (s *Session) Launch(ctx context.Context, req Request) Result {
	id := uuid.NewString()
	log := s.logger.With().Str("attempt", id).Logger()
	a := &attempt{
		session: s,
		machine: &machine{id: id, state: Idle, log: log},
		log:     log,
	}

	if req.System == nil || req.Function == nil || req.User == "" {
		return a.fail(apperrors.New(apperrors.ValidationError, "Select a system, user and function first", nil))
	}
	system, user, fn := req.System, req.User, req.Function
	log = log.With().Str("system", system.Name).Str("user", user).Str("function", fn.ID).Logger()
	a.log, a.machine.log = log, log

	if err := a.move(Resolving); err != nil {
		return a.fail(err)
	}

	needsAuth := fn.NeedsAuthentication()
	var password string
	if needsAuth {
		pw, ok := s.password(ctx, system.Name, user, log)
		if !ok {
			return a.cancel(apperrors.New(apperrors.UserCancelled, MsgCancelled, nil))
		}
		password = pw
	}

	table := placeholder.BuildTable(req.Settings, system, user, password)
	launchCmd, err := placeholder.Render(fn.LaunchCmd, table)
	if err != nil {
		return a.fail(asAppError(err))
	}

	logonTemplate := req.Settings.LogonTemplate(fn)
	runLogon := false
	switch {
	case !needsAuth:
	case strings.TrimSpace(logonTemplate) == "":
		log.Debug().Msg("no logon command configured, skipping logon")
	case s.memo.Matches(system.Name, user):
		log.Info().Msg("already logged on, skipping logon")
	default:
		runLogon = true
	}

	if runLogon {
		logonCmd, err := placeholder.Render(logonTemplate, table)
		if err != nil {
			return a.fail(asAppError(err))
		}
		if err := a.move(Authenticating); err != nil {
			return a.fail(err)
		}
		s.presenter.Notify(MsgAuthenticating)

		out := s.runner.RunAuthentication(ctx, logonCmd, req.Settings.LogonTimeoutDuration())
		if !out.OK {
			errType := apperrors.AuthenticationFailed
			if out.Message == process.MsgLogonTimedOut {
				errType = apperrors.AuthenticationTimedOut
			}
			return a.fail(apperrors.New(errType, out.Message, nil))
		}
		s.memo.Remember(system.Name, user)
		log.Info().Msg("logon succeeded")
	}

	if err := a.move(Launching); err != nil {
		return a.fail(err)
	}
	s.presenter.Notify(MsgLaunching)

	out := s.runner.SpawnDetached(ctx, launchCmd)
	if !out.OK {
		return a.fail(apperrors.New(apperrors.LaunchSpawnFailed, out.Message, nil))
	}
	return a.succeed(out.Message)
}

// password returns the stored password or prompts for one. ok is false when
// the user cancelled the prompt.
func (s *Session) password(ctx context.Context, system, user string, log zerolog.Logger) (string, bool) {
	pw, found, err := s.creds.Lookup(system, user)
	if err != nil {
		log.Warn().Err(err).Msg("password lookup failed, prompting instead")
	}
	if found {
		return pw, true
	}

	pw, persist, ok := s.presenter.PromptPassword(ctx, system, user)
	if !ok {
		return "", false
	}
	if persist {
		if err := s.creds.Store(system, user, pw); err != nil {
			log.Warn().Err(err).Msg("cannot save password to keyring")
		} else {
			log.Info().Msg("password saved to keyring")
		}
	}
	return pw, true
}

// ForgetLogon drops the memo entry for a pair whose password changed.
func (s *Session) ForgetLogon(system, user string) {
	s.memo.Forget(system, user)
}

func asAppError(err error) *apperrors.AppError {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr
	}
	return apperrors.New(apperrors.UnresolvedPlaceholder, err.Error(), err)
}
