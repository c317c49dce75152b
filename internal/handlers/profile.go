package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/platewise/platewise-backend/internal/models"
	"github.com/platewise/platewise-backend/internal/repository"
	"github.com/platewise/platewise-backend/internal/services"
)

type ProfileHandler struct {
	accounts repository.AccountStore
	sessions services.SessionStore
}

func NewProfileHandler(accounts repository.AccountStore, sessions services.SessionStore) *ProfileHandler {
	return &ProfileHandler{accounts: accounts, sessions: sessions}
}

type ProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Account *models.Account `json:"account,omitempty"`
}

// Get handles GET /api/profile.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := requireAuth(w, r, h.sessions)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	account, err := h.accounts.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Account: account})
}

// Save handles PUT /api/profile. Only the mutable profile fields are updated;
// username and password are carried through unchanged no matter what the
// payload contains.
func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	username, ok := requireAuth(w, r, h.sessions)
	if !ok {
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if profile.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if profile.Age != nil && (*profile.Age < 1 || *profile.Age > 120) {
		writeError(w, http.StatusBadRequest, "Age must be between 1 and 120")
		return
	}
	if profile.HeightCm != nil && (*profile.HeightCm < 30 || *profile.HeightCm > 300) {
		writeError(w, http.StatusBadRequest, "Height must be between 30 and 300 cm")
		return
	}
	if profile.WeightKg != nil && (*profile.WeightKg < 2 || *profile.WeightKg > 500) {
		writeError(w, http.StatusBadRequest, "Weight must be between 2 and 500 kg")
		return
	}
	for _, goal := range profile.Goals {
		if !models.ValidGoal(goal) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown goal: %s", goal))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.accounts.SaveProfile(ctx, username, &profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Printf("ERROR: failed to save profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	account, err := h.accounts.GetAccount(ctx, username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Message: "Profile saved", Account: account})
}
