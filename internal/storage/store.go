// Package storage provides durable local key/value persistence for the
// tracker's records. Values are serialized as JSON text; the store is
// type-oblivious and callers own reconstruction of typed fields.
package storage

import "errors"

// Storage keys for the three independent persisted records.
const (
	KeyGoals         = "goals"
	KeyExchangeRate  = "exchange_rate"
	KeyLastRateFetch = "last_rate_fetch"
)

// ErrStoreUnavailable indicates the underlying storage medium could not be
// used. Reads degrade to absent and writes to failure; callers surface the
// condition without losing in-memory state.
var ErrStoreUnavailable = errors.New("storage unavailable")

// Store is a generic key/value store over JSON-serialized values.
// Get decodes the value for key into out and reports whether the key was
// present; a missing key is not an error. Set and Remove report success;
// a store with no usable medium returns absent/false rather than failing.
type Store interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) bool
	Remove(key string) bool
}
