// Package storage provides the persistent key-value store the client core
// reads its auth token and theme preference from.
//
// Two implementations are offered:
//   - FileStore: a JSON object file, re-read on every Get, written atomically
//   - MemoryStore: process-local, for tests and throwaway sessions
//
// Example Usage:
//
//	store := storage.NewFileStore(cfg.Storage.Path)
//	_ = store.Set(storage.AuthTokenKey, token)
package storage
