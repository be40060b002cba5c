package aerogate

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the session engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrRegistrationFailed is an exported constant or variable used by the session engine.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrSessionInvalid is an exported constant or variable used by the session engine.
	ErrSessionInvalid = errors.New("session invalid")
	// ErrTransport is an exported constant or variable used by the session engine.
	ErrTransport = errors.New("transport failure")
	// ErrCredentialStore is an exported constant or variable used by the session engine.
	ErrCredentialStore = errors.New("credential store failure")
	// ErrEngineNotReady is an exported constant or variable used by the session engine.
	ErrEngineNotReady = errors.New("engine not ready")
)
