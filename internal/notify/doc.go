// Package notify delivers state changes to subscribers in order without
// holding a lock across their callbacks.
package notify
