// Package storage defines the key-value persistence contract the mastery
// store is built on, plus the concrete backends.
package storage

// KeyValue is the single boundary the engine persists through. Get returns
// (nil, nil) when the key is absent. Backends do not serialize concurrent
// writers: callers must guarantee a single writer per key, or accept
// last-writer-wins with silent loss of intervening writes.
type KeyValue interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Remove(key string) error
}
