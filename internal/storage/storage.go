// Package storage records trigger invocations for after-the-fact inspection.
// The store is insert-only; the trigger itself never reads conversation
// state back, callers own their history.
package storage

import (
	"context"
	"time"
)

// Invocation is one handled webhook delivery.
type Invocation struct {
	ID              string
	TriggerPath     string
	SessionID       string
	ThreadID        string
	MessageCount    int
	AttachmentCount int
	Status          int
	Duration        time.Duration
	CreatedAt       time.Time
}

// InvocationStore persists invocation records.
type InvocationStore interface {
	RecordInvocation(ctx context.Context, inv *Invocation) error
	Close() error
}

// Noop discards every record. It is the default when no storage backend is
// configured.
type Noop struct{}

func (Noop) RecordInvocation(context.Context, *Invocation) error { return nil }
func (Noop) Close() error                                        { return nil }
