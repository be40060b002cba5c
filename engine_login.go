package aerogate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aerodesk/aerogate/api"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, creds Credentials) (SessionState, error) {
	if e == nil {
		return SessionState{Status: StatusUnknown}, ErrEngineNotReady
	}

	// The snapshot is taken after the in-flight counter drops, so a
	// finished Login never reports itself as still loading.
	err := e.login(ctx, creds)
	return e.State(), err
}

func (e *Engine) login(ctx context.Context, creds Credentials) error {
	// Failure events report the status settled before the attempt, since a
	// failed attempt leaves the session as it was.
	settled := e.State().Status

	seq := e.beginOp()
	defer e.endOp()

	pair, err := e.authAPI.ExchangeToken(ctx, creds)
	if err != nil {
		// A rejected or failed attempt leaves the current session alone.
		// Whoever was signed in before the attempt stays signed in.
		mapped := classifyCredentialError(err)
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, settled, creds.Email, false, mapped, nil)
		return mapped
	}

	// A newer mutation may have finished while the exchange was in flight,
	// most notably a logout. Saving now would plant tokens for a session the
	// user already ended, so the attempt is discarded before it persists
	// anything.
	if !e.opFresh(seq) {
		e.metricInc(MetricCommitSuperseded)
		e.emitEvent(ctx, eventCommitSuperseded, StatusUnknown, creds.Email, false, nil, nil)
		return nil
	}

	if err := e.creds.Save(ctx, pair); err != nil {
		mapped := fmt.Errorf("%w: %v", ErrCredentialStore, err)
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, settled, creds.Email, false, mapped, nil)
		return mapped
	}

	started := time.Now()
	profile, err := e.authAPI.FetchProfile(ctx, pair.Access)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricProfileFetchLatency, time.Since(started))
	}
	if err != nil {
		// The tokens were accepted but the profile is unreachable. Roll the
		// saved pair back so a later rehydration cannot resurrect a login
		// that was never reported as successful.
		if clearErr := e.creds.Clear(ctx); clearErr != nil {
			log.Printf("aerogate: credential rollback failed after profile fetch: %v", clearErr)
		}
		mapped := classifySessionError(err)
		e.metricInc(MetricLoginFailure)
		e.emitEvent(ctx, eventLoginFailure, settled, creds.Email, false, mapped, nil)
		return mapped
	}

	applied := e.commit(seq, SessionState{Status: StatusAuthenticated, User: profile})
	if !applied {
		// The pair persisted above belongs to a login that lost the race.
		// Remove it unless a newer operation already stored its own, so
		// the next rehydration cannot resurrect this session.
		if stored, loadErr := e.creds.Load(ctx); loadErr == nil && stored == pair {
			if clearErr := e.creds.Clear(ctx); clearErr != nil {
				log.Printf("aerogate: credential rollback failed after superseded login: %v", clearErr)
			}
		}
		e.metricInc(MetricCommitSuperseded)
		e.emitEvent(ctx, eventCommitSuperseded, StatusUnknown, creds.Email, false, nil, nil)
		return nil
	}

	e.metricInc(MetricLoginSuccess)
	e.emitEvent(ctx, eventLoginSuccess, StatusAuthenticated, profile.Email, true, nil, nil)
	return nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, account NewAccount) error {
	if e == nil {
		return ErrEngineNotReady
	}

	// Registration never touches the session, so the status it reports is
	// the one settled before the operation began.
	status := e.State().Status

	e.beginOp()
	defer e.endOp()

	if err := e.authAPI.RegisterAccount(ctx, account); err != nil {
		mapped := classifyRegistrationError(err)
		e.metricInc(MetricRegisterFailure)
		e.emitEvent(ctx, eventRegisterFailure, status, account.Email, false, mapped, nil)
		return mapped
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitEvent(ctx, eventRegisterSuccess, status, account.Email, true, nil, nil)
	return nil
}

// classifyCredentialError distinguishes a rejected credential pair from an
// unreachable backend. Only a definitive HTTP rejection maps to
// ErrInvalidCredentials; anything else stays a transport failure so callers
// do not tell the user their password was wrong when the network was down.
func classifyCredentialError(err error) error {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func classifySessionError(err error) error {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func classifyRegistrationError(err error) error {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
