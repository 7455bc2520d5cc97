package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jezweb/better-chat-trigger/internal/storage"
)

func testInvocation(id, path string) *storage.Invocation {
	return &storage.Invocation{
		ID:              id,
		TriggerPath:     path,
		SessionID:       "session_abc123def456_1700000000000",
		ThreadID:        "thread_abc123def456_1700000000000",
		MessageCount:    2,
		AttachmentCount: 1,
		Status:          200,
		Duration:        15 * time.Millisecond,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestStore_RecordInvocation(t *testing.T) {
	// In-memory SQLite with shared cache
	store, err := New("file:memdb1?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.RecordInvocation(ctx, testInvocation("inv-1", "chat")); err != nil {
		t.Fatalf("RecordInvocation() error = %v", err)
	}
	if err := store.RecordInvocation(ctx, testInvocation("inv-2", "support")); err != nil {
		t.Fatalf("RecordInvocation() error = %v", err)
	}

	count, err := store.InvocationCount(ctx, "")
	if err != nil {
		t.Fatalf("InvocationCount() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	count, err = store.InvocationCount(ctx, "chat")
	if err != nil {
		t.Fatalf("InvocationCount(chat) error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 for trigger path filter", count)
	}
}

func TestStore_DuplicateID(t *testing.T) {
	store, err := New("file:memdb2?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.RecordInvocation(ctx, testInvocation("dup", "chat")); err != nil {
		t.Fatalf("RecordInvocation() error = %v", err)
	}
	if err := store.RecordInvocation(ctx, testInvocation("dup", "chat")); err == nil {
		t.Error("duplicate primary key should error")
	}
}
