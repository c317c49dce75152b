package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/platewise/platewise-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, profile *handlers.ProfileHandler, plan *handlers.PlanHandler) {
	// Auth routes
	r.Post("/api/auth/signup", auth.Signup)
	r.Post("/api/auth/signin", auth.Signin)
	r.Post("/api/auth/logout", auth.Logout)
	r.Get("/api/auth/me", auth.Me)
	r.Post("/api/auth/change-password", auth.ChangePassword)

	// Profile routes
	r.Get("/api/profile", profile.Get)
	r.Put("/api/profile", profile.Save)

	// Meal plan routes
	r.Post("/api/plan", plan.Generate)
	r.Post("/api/plan/feedback", plan.SubmitFeedback)
}
