package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/platewise/platewise-backend/internal/models"
)

func TestMockStore_CreateIsCreateIfAbsent(t *testing.T) {
	t.Parallel()

	store := NewMockStore()
	ctx := context.Background()

	first := &models.Account{Username: "alice", Name: "Alice", PasswordHash: "hash-1"}
	if err := store.CreateAccount(ctx, first); err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}

	second := &models.Account{Username: "alice", Name: "Impostor", PasswordHash: "hash-2"}
	if err := store.CreateAccount(ctx, second); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want ErrAlreadyExists", err)
	}

	got, err := store.GetAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if got.Name != "Alice" || got.PasswordHash != "hash-1" {
		t.Fatalf("existing account was modified by failed signup: %+v", got)
	}
}

func TestMockStore_SaveProfileKeepsCredentials(t *testing.T) {
	t.Parallel()

	store := NewMockStore()
	ctx := context.Background()

	account := &models.Account{Username: "alice", Name: "Alice", PasswordHash: "hash-1"}
	if err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}

	age := 30
	profile := &models.Profile{Name: "Alice A.", Age: &age, Goals: []string{"Lose Fat"}}
	if err := store.SaveProfile(ctx, "alice", profile); err != nil {
		t.Fatalf("SaveProfile error: %v", err)
	}

	got, err := store.GetAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if got.PasswordHash != "hash-1" {
		t.Fatalf("SaveProfile altered password_hash: %q", got.PasswordHash)
	}
	if got.Username != "alice" {
		t.Fatalf("SaveProfile altered username: %q", got.Username)
	}
	if got.Age == nil || *got.Age != 30 {
		t.Fatalf("SaveProfile did not persist age: %+v", got.Age)
	}
}

func TestMockStore_ConcurrentFeedbackAppends(t *testing.T) {
	t.Parallel()

	store := NewMockStore()
	ctx := context.Background()

	if err := store.CreateAccount(ctx, &models.Account{Username: "alice", PasswordHash: "h"}); err != nil {
		t.Fatalf("CreateAccount error: %v", err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry := models.FeedbackEntry{
				PlanText:     "plan",
				FeedbackText: fmt.Sprintf("feedback %d", i),
				CreatedAt:    time.Now(),
			}
			if err := store.AppendFeedback(ctx, "alice", entry); err != nil {
				t.Errorf("AppendFeedback error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := store.GetAccount(ctx, "alice")
	if err != nil {
		t.Fatalf("GetAccount error: %v", err)
	}
	if len(got.Feedback) != n {
		t.Fatalf("feedback entries = %d, want %d", len(got.Feedback), n)
	}
}

func TestMockStore_MissingAccount(t *testing.T) {
	t.Parallel()

	store := NewMockStore()
	ctx := context.Background()

	if _, err := store.GetAccount(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetAccount error = %v, want ErrNotFound", err)
	}
	if err := store.SaveProfile(ctx, "ghost", &models.Profile{Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SaveProfile error = %v, want ErrNotFound", err)
	}
	if err := store.AppendFeedback(ctx, "ghost", models.FeedbackEntry{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AppendFeedback error = %v, want ErrNotFound", err)
	}
	if err := store.UpdatePassword(ctx, "ghost", "h"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdatePassword error = %v, want ErrNotFound", err)
	}
}
