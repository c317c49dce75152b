package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
)

// MockSessions is an in-memory SessionStore for tests.
type MockSessions struct {
	mu      sync.Mutex
	byToken map[string]string
	byUser  map[string]string
}

func NewMockSessions() *MockSessions {
	return &MockSessions{
		byToken: make(map[string]string),
		byUser:  make(map[string]string),
	}
}

func (s *MockSessions) Create(ctx context.Context, username string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byUser[username]; ok {
		delete(s.byToken, old)
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	s.byToken[token] = username
	s.byUser[username] = token
	return token, nil
}

func (s *MockSessions) Validate(ctx context.Context, token string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.byToken[token]
	return username, ok, nil
}

func (s *MockSessions) Invalidate(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username, ok := s.byToken[token]; ok {
		delete(s.byUser, username)
	}
	delete(s.byToken, token)
	return nil
}

func (s *MockSessions) InvalidateUser(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.byUser[username]; ok {
		delete(s.byToken, token)
	}
	delete(s.byUser, username)
	return nil
}

// MockPlans is an in-memory PlanStore for tests.
type MockPlans struct {
	mu    sync.Mutex
	plans map[string]string
}

func NewMockPlans() *MockPlans {
	return &MockPlans{plans: make(map[string]string)}
}

func (p *MockPlans) Put(ctx context.Context, username, planID, planText string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.plans[username+":"+planID] = planText
	return nil
}

func (p *MockPlans) Get(ctx context.Context, username, planID string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	text, ok := p.plans[username+":"+planID]
	if !ok {
		return "", fmt.Errorf("plan %s not found", planID)
	}
	return text, nil
}
