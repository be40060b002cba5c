// Package credstore holds the raw access/refresh token pair across process
// restarts. It is deliberately dumb: no validation, no expiry tracking, no
// knowledge of what the tokens mean. The session engine consults only the
// presence of tokens; the backend decides whether they are still good.
//
// Three implementations cover the deployment spectrum: [RedisStore] for a
// shared durable slot, [FileStore] for a single-host file, [MemoryStore] for
// tests and ephemeral sessions.
//
// The stored TokenPair is the single durable session record. Nothing derived
// from it (user profile, authenticated flag) is ever persisted alongside, so
// the store can never disagree with a cached snapshot.
package credstore
