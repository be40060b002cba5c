package aerogate

import (
	"context"
	"time"
)

// CheckAuth describes the checkauth operation and its observable behavior.
//
// CheckAuth may return an error when input validation, dependency calls, or security checks fail.
// CheckAuth does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CheckAuth(ctx context.Context) SessionState {
	if e == nil {
		return SessionState{Status: StatusUnknown}
	}

	// Rehydration is not a user-visible loading phase, so it reserves a
	// sequence number without touching the in-flight counter.
	e.mu.Lock()
	e.opSeq++
	seq := e.opSeq
	e.mu.Unlock()

	pair, err := e.creds.Load(ctx)
	if err != nil {
		// A store that failed to read would also fail to clear, so the
		// saved pair is left in place and the session resolves as absent.
		e.commit(seq, SessionState{Status: StatusUnauthenticated})
		e.metricInc(MetricSessionAbsent)
		e.emitEvent(ctx, eventSessionAbsent, StatusUnauthenticated, "", false, err, nil)
		return e.State()
	}

	if !pair.HasAccess() {
		e.commit(seq, SessionState{Status: StatusUnauthenticated})
		e.metricInc(MetricSessionAbsent)
		e.emitEvent(ctx, eventSessionAbsent, StatusUnauthenticated, "", true, nil, nil)
		return e.State()
	}

	started := time.Now()
	profile, err := e.authAPI.FetchProfile(ctx, pair.Access)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricProfileFetchLatency, time.Since(started))
	}
	if err != nil {
		mapped := classifySessionError(err)
		e.metricInc(MetricSessionInvalidated)
		e.emitEvent(ctx, eventSessionInvalid, StatusUnauthenticated, "", false, mapped, nil)
		e.Logout(ctx)
		return e.State()
	}

	applied := e.commit(seq, SessionState{Status: StatusAuthenticated, User: profile})
	if !applied {
		e.metricInc(MetricCommitSuperseded)
		e.emitEvent(ctx, eventCommitSuperseded, StatusUnknown, profile.Email, false, nil, nil)
		return e.State()
	}

	e.metricInc(MetricSessionRestored)
	e.emitEvent(ctx, eventSessionRestored, StatusAuthenticated, profile.Email, true, nil, nil)
	return e.State()
}
