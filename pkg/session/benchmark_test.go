package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/broadsidehq/lobby/pkg/session"
)

func BenchmarkRegistry_Create(b *testing.B) {
	registry := session.New(session.WithCleanupInterval(0))
	defer registry.Close()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sess, err := registry.Create(ctx, "Alice_01", "3")
		if err != nil {
			b.Fatal(err)
		}
		// Keep the id space from filling up.
		if err := registry.End(ctx, sess.ID); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRegistry_Resolve(b *testing.B) {
	registry := session.New(session.WithCleanupInterval(0))
	defer registry.Close()
	ctx := context.Background()

	sess, err := registry.Create(ctx, "Alice_01", "3")
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := registry.Resolve(ctx, sess.ID); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMemoryStore_Touch(b *testing.B) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	now := time.Now()
	sessions := make([]uuid.UUID, 1000)
	for i := range sessions {
		sess := newTestSession(fmtPlayerID(i), now)
		sessions[i] = sess.ID
		if err := store.Create(ctx, sess); err != nil {
			b.Fatal(err)
		}
	}

	cutoff := now.Add(-10 * time.Minute)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Touch(ctx, sessions[i%len(sessions)], now, cutoff); err != nil {
			b.Fatal(err)
		}
	}
}
