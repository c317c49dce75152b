package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/platewise/platewise-backend/internal/models"
)

// MockStore is an in-memory AccountStore for tests and local development
// without MongoDB. It mirrors the store's semantics: create-if-absent,
// partial profile updates, and atomic feedback appends.
type MockStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account
}

func NewMockStore() *MockStore {
	return &MockStore{accounts: make(map[string]*models.Account)}
}

func (s *MockStore) CreateAccount(ctx context.Context, account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.Username]; ok {
		return ErrAlreadyExists
	}
	now := time.Now()
	account.ID = primitive.NewObjectID()
	account.CreatedAt = now
	account.UpdatedAt = now

	stored := *account
	s.accounts[account.Username] = &stored
	return nil
}

func (s *MockStore) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	copied.Goals = append([]string(nil), account.Goals...)
	copied.Feedback = append([]models.FeedbackEntry(nil), account.Feedback...)
	return &copied, nil
}

func (s *MockStore) SaveProfile(ctx context.Context, username string, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[username]
	if !ok {
		return ErrNotFound
	}
	account.Name = profile.Name
	account.Age = profile.Age
	account.HeightCm = profile.HeightCm
	account.WeightKg = profile.WeightKg
	account.Country = profile.Country
	account.Cuisine = profile.Cuisine
	account.FoodAvailability = profile.FoodAvailability
	account.HealthIssues = profile.HealthIssues
	account.Goals = append([]string(nil), profile.Goals...)
	account.UpdatedAt = time.Now()
	return nil
}

func (s *MockStore) AppendFeedback(ctx context.Context, username string, entry models.FeedbackEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[username]
	if !ok {
		return ErrNotFound
	}
	account.Feedback = append(account.Feedback, entry)
	account.UpdatedAt = time.Now()
	return nil
}

func (s *MockStore) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[username]
	if !ok {
		return ErrNotFound
	}
	account.PasswordHash = passwordHash
	account.UpdatedAt = time.Now()
	return nil
}
