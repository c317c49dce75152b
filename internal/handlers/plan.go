package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/platewise-backend/internal/llm"
	"github.com/platewise/platewise-backend/internal/models"
	"github.com/platewise/platewise-backend/internal/repository"
	"github.com/platewise/platewise-backend/internal/services"
)

// generateTimeout bounds the blocking text-generation call.
const generateTimeout = 60 * time.Second

type PlanHandler struct {
	accounts  repository.AccountStore
	sessions  services.SessionStore
	plans     services.PlanStore
	generator llm.Generator
}

func NewPlanHandler(accounts repository.AccountStore, sessions services.SessionStore, plans services.PlanStore, generator llm.Generator) *PlanHandler {
	return &PlanHandler{accounts: accounts, sessions: sessions, plans: plans, generator: generator}
}

type GeneratePlanResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	PlanID  string `json:"plan_id,omitempty"`
	Plan    string `json:"plan,omitempty"`
}

type FeedbackRequest struct {
	PlanID   string `json:"plan_id"`
	Feedback string `json:"feedback"`
}

// Generate handles POST /api/plan. Every call re-generates; identical
// profiles do not share plans.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	username, ok := requireAuth(w, r, h.sessions)
	if !ok {
		return
	}

	storeCtx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	account, err := h.accounts.GetAccount(storeCtx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	prompt := llm.BuildMealPlanPrompt(account)

	genCtx, genCancel := context.WithTimeout(r.Context(), generateTimeout)
	defer genCancel()

	plan, err := h.generator.Generate(genCtx, prompt)
	if err != nil {
		log.Printf("ERROR: plan generation for %s: %v", username, err)
		writeError(w, http.StatusBadGateway, "Plan generation failed. Please try again.")
		return
	}

	planID := uuid.New().String()
	if err := h.plans.Put(r.Context(), username, planID, plan); err != nil {
		// The plan is still usable; feedback just won't attach to it
		log.Printf("ERROR: failed to store plan %s: %v", planID, err)
	}

	writeJSON(w, http.StatusOK, GeneratePlanResponse{
		Success: true,
		PlanID:  planID,
		Plan:    plan,
	})
}

// SubmitFeedback handles POST /api/plan/feedback. The plan_id must reference
// a recently generated plan for this user; the stored plan text is appended
// to the account together with the feedback.
func (h *PlanHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	username, ok := requireAuth(w, r, h.sessions)
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlanID == "" || req.Feedback == "" {
		writeError(w, http.StatusBadRequest, "plan_id and feedback are required")
		return
	}

	planText, err := h.plans.Get(r.Context(), username, req.PlanID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown or expired plan")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	entry := models.FeedbackEntry{
		PlanText:     planText,
		FeedbackText: req.Feedback,
		CreatedAt:    time.Now(),
	}
	if err := h.accounts.AppendFeedback(ctx, username, entry); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Account not found")
			return
		}
		log.Printf("ERROR: failed to append feedback: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	writeJSON(w, http.StatusCreated, Response{Success: true, Message: "Feedback saved. Thank you!"})
}
