package aerogate

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/aerodesk/aerogate/credstore"
)

// Engine defines a public type used by aerogate APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config  Config
	authAPI AuthAPI
	creds   credstore.Store
	events  *eventDispatcher
	metrics *Metrics

	mu          sync.Mutex
	state       SessionState
	opSeq       uint64
	lastApplied uint64
	inFlight    int
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.events != nil {
		e.events.Close()
	}
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
//
// EventsDropped may return an error when input validation, dependency calls, or security checks fail.
// EventsDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) EventsDropped() uint64 {
	if e == nil || e.events == nil {
		return 0
	}
	return e.events.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// State describes the state operation and its observable behavior.
//
// State may return an error when input validation, dependency calls, or security checks fail.
// State does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) State() SessionState {
	if e == nil {
		return SessionState{Status: StatusUnknown}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	snapshot := e.state
	snapshot.Loading = e.inFlight > 0
	if e.state.User != nil {
		user := *e.state.User
		snapshot.User = &user
	}
	return snapshot
}

// beginOp reserves a sequence number for a mutation and marks it in flight.
// The returned sequence orders concurrent mutations: only the commit carrying
// the highest sequence seen so far may change the session state.
func (e *Engine) beginOp() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opSeq++
	e.inFlight++
	return e.opSeq
}

func (e *Engine) endOp() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.inFlight > 0 {
		e.inFlight--
	}
}

// opFresh reports whether the operation holding seq is still the newest
// mutation, meaning nothing has been applied since it began.
func (e *Engine) opFresh(seq uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return seq >= e.lastApplied
}

// commit applies the outcome of a mutation. A commit whose sequence is older
// than the last applied one is discarded so that a slow operation can never
// overwrite the outcome of a newer one.
func (e *Engine) commit(seq uint64, state SessionState) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq < e.lastApplied {
		return false
	}
	e.lastApplied = seq
	e.state = state
	return true
}

// Logout describes the logout operation and its observable behavior.
//
// Logout may return an error when input validation, dependency calls, or security checks fail.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Logout(ctx context.Context) {
	if e == nil {
		return
	}

	e.mu.Lock()
	e.opSeq++
	e.lastApplied = e.opSeq
	e.state = SessionState{Status: StatusUnauthenticated}
	e.mu.Unlock()

	if err := e.creds.Clear(ctx); err != nil {
		log.Printf("aerogate: credential clear failed during logout: %v", err)
	}

	e.metricInc(MetricLogout)
	e.emitEvent(ctx, eventLogout, StatusUnauthenticated, "", true, nil, nil)
}

func (e *Engine) emitEvent(
	ctx context.Context,
	eventType string,
	status SessionStatus,
	userEmail string,
	success bool,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.events == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := Event{
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		Status:    status.String(),
		UserEmail: userEmail,
		Success:   success,
		Metadata:  metadata,
	}
	if code := eventErrorCode(err); code != "" {
		event.Error = code
	}

	e.events.Emit(ctx, event)
}

func eventErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrRegistrationFailed):
		return "registration_failed"
	case errors.Is(err, ErrSessionInvalid):
		return "session_invalid"
	case errors.Is(err, ErrTransport):
		return "transport"
	case errors.Is(err, ErrCredentialStore):
		return "credential_store"
	default:
		return "internal"
	}
}
