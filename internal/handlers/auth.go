package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/platewise/platewise-backend/internal/models"
	"github.com/platewise/platewise-backend/internal/repository"
	"github.com/platewise/platewise-backend/internal/services"
	"github.com/platewise/platewise-backend/pkg/utils"
)

const storeTimeout = 5 * time.Second

type AuthHandler struct {
	accounts repository.AccountStore
	sessions services.SessionStore
}

func NewAuthHandler(accounts repository.AccountStore, sessions services.SessionStore) *AuthHandler {
	return &AuthHandler{accounts: accounts, sessions: sessions}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AuthResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Account *models.Account `json:"account,omitempty"`
	Token   string          `json:"token,omitempty"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if err := utils.ValidateUsername(req.Username); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	account := &models.Account{
		Username:     utils.NormalizeUsername(req.Username),
		Name:         req.Name,
		PasswordHash: hashedPassword,
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	if err := h.accounts.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			writeError(w, http.StatusConflict, "Username is already taken")
			return
		}
		log.Printf("ERROR: failed to create account: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "Account created successfully",
		Account: account,
	})
}

// Signin handles POST /api/auth/signin. Unknown usernames and wrong passwords
// produce the identical response so usernames cannot be enumerated.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	account, err := h.accounts.GetAccount(ctx, utils.NormalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		log.Printf("ERROR: failed to fetch account: %v", err)
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid, err := utils.VerifyPassword(req.Password, account.PasswordHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := h.sessions.Create(r.Context(), account.Username)
	if err != nil {
		log.Printf("ERROR: failed to create session: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		Account: account,
		Token:   token,
	})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token != "" {
		if err := h.sessions.Invalidate(r.Context(), token); err != nil {
			log.Printf("ERROR: failed to invalidate session: %v", err)
		}
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Logged out"})
}

// Me handles GET /api/auth/me and returns the stored account for the session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := requireAuth(w, r, h.sessions)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	account, err := h.accounts.GetAccount(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: "OK", Account: account})
}

// ChangePassword handles POST /api/auth/change-password. On success every
// session for the user is invalidated and a fresh login is required.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username, ok := requireAuth(w, r, h.sessions)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
	defer cancel()

	account, err := h.accounts.GetAccount(ctx, username)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	valid, err := utils.VerifyPassword(req.CurrentPassword, account.PasswordHash)
	if err != nil || !valid {
		writeError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	if err := h.accounts.UpdatePassword(ctx, username, hashedPassword); err != nil {
		log.Printf("ERROR: failed to update password: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	if err := h.sessions.InvalidateUser(r.Context(), username); err != nil {
		log.Printf("ERROR: failed to invalidate sessions: %v", err)
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Password updated. Please sign in again."})
}
