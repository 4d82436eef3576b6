// Package store defines the persistence boundary shared by storage backends:
// the error taxonomy and the event-emitter hook used to broadcast social
// events without coupling the store to a delivery mechanism.
package store

// SoulmateFormedEvent is emitted after a mutual soullink request commits.
type SoulmateFormedEvent struct {
	SoulmateID string
	UserLoID   string
	UserHiID   string
}

// MutualInterestEvent is emitted after a mutual profile interest commits.
type MutualInterestEvent struct {
	UserAID string
	UserBID string
}

// EventEmitter receives social events after their transaction commits.
// Implementations must not block; the store calls Emit inline.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter.
func NewNoopEmitter() EventEmitter {
	return NoopEmitter{}
}
