//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"focus-guardian/internal/domain/model"
)

func TestAILogRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode.")
	}

	repo := NewAILogRepo(testPool)
	ctx := context.Background()

	t.Run("should list newest first with limit", func(t *testing.T) {
		cleanup(t)

		for i := 0; i < 3; i++ {
			l := &model.AICallLog{
				UserID:    "user-1",
				Prompt:    "p",
				Response:  "r",
				Model:     "gpt-4o",
				CreatedAt: time.Now().Add(time.Duration(i) * time.Minute),
			}
			if err := repo.Save(ctx, nil, l); err != nil {
				t.Fatalf("Failed to save log: %v", err)
			}
		}

		got, err := repo.ListByUser(ctx, nil, "user-1", 2)
		if err != nil {
			t.Fatalf("ListByUser failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 logs, got %d", len(got))
		}
		if !got[0].CreatedAt.After(got[1].CreatedAt) {
			t.Error("Expected newest-first ordering")
		}
	})

	t.Run("should prune logs older than cutoff", func(t *testing.T) {
		cleanup(t)

		old := &model.AICallLog{UserID: "user-1", Prompt: "old", CreatedAt: time.Now().Add(-100 * 24 * time.Hour)}
		fresh := &model.AICallLog{UserID: "user-1", Prompt: "fresh", CreatedAt: time.Now()}
		for _, l := range []*model.AICallLog{old, fresh} {
			if err := repo.Save(ctx, nil, l); err != nil {
				t.Fatalf("Failed to save log: %v", err)
			}
		}

		n, err := repo.DeleteOlderThan(ctx, time.Now().Add(-90*24*time.Hour))
		if err != nil {
			t.Fatalf("DeleteOlderThan failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 pruned row, got %d", n)
		}
		remaining, _ := repo.ListByUser(ctx, nil, "user-1", 10)
		if len(remaining) != 1 || remaining[0].Prompt != "fresh" {
			t.Errorf("Expected only the fresh log to remain: %+v", remaining)
		}
	})
}
