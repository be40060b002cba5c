package middleware

import (
	"context"
	"net/http"

	aerogate "github.com/aerodesk/aerogate"
)

type sessionContextKey struct{}

// SessionFromContext describes the sessionfromcontext operation and its observable behavior.
//
// SessionFromContext may return an error when input validation, dependency calls, or security checks fail.
// SessionFromContext does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func SessionFromContext(ctx context.Context) (aerogate.SessionState, bool) {
	state, ok := ctx.Value(sessionContextKey{}).(aerogate.SessionState)
	return state, ok
}

// Attach describes the attach operation and its observable behavior.
//
// Attach may return an error when input validation, dependency calls, or security checks fail.
// Attach does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Attach(engine *aerogate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), sessionContextKey{}, engine.State())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession describes the requiresession operation and its observable behavior.
//
// RequireSession may return an error when input validation, dependency calls, or security checks fail.
// RequireSession does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func RequireSession(engine *aerogate.Engine, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}

			state := engine.State()
			switch state.Status {
			case aerogate.StatusAuthenticated:
				ctx := context.WithValue(r.Context(), sessionContextKey{}, state)
				next.ServeHTTP(w, r.WithContext(ctx))
			case aerogate.StatusUnknown:
				writeLoading(w)
			default:
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
			}
		})
	}
}

// RequireStaff describes the requirestaff operation and its observable behavior.
//
// RequireStaff may return an error when input validation, dependency calls, or security checks fail.
// RequireStaff does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func RequireStaff(engine *aerogate.Engine, loginURL, homeURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}

			state := engine.State()
			switch {
			case state.Status == aerogate.StatusUnknown:
				writeLoading(w)
			case state.Status != aerogate.StatusAuthenticated:
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
			case !state.Privileged():
				// Authenticated but not staff: send away rather than
				// reveal that the route exists behind a login wall.
				http.Redirect(w, r, homeURL, http.StatusSeeOther)
			default:
				ctx := context.WithValue(r.Context(), sessionContextKey{}, state)
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}

// writeLoading renders the neutral response for an unresolved session. It is
// neither a grant nor a redirect: the client is told to retry once the
// startup rehydration has settled.
func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	http.Error(w, "session loading", http.StatusServiceUnavailable)
}
