package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account is one document per user in the "accounts" collection.
// Username is unique (enforced by index) and immutable after signup.
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Username     string `bson:"username" json:"username"`
	Name         string `bson:"name" json:"name"`
	PasswordHash string `bson:"password_hash" json:"-"` // Never returned in JSON

	// Profile fields, null/empty until the first profile save
	Age      *int     `bson:"age,omitempty" json:"age"`
	HeightCm *float64 `bson:"height_cm,omitempty" json:"height_cm"`
	WeightKg *float64 `bson:"weight_kg,omitempty" json:"weight_kg"`

	Country          string `bson:"country,omitempty" json:"country,omitempty"`
	Cuisine          string `bson:"cuisine,omitempty" json:"cuisine,omitempty"`
	FoodAvailability string `bson:"food_availability,omitempty" json:"food_availability,omitempty"`
	HealthIssues     string `bson:"health_issues,omitempty" json:"health_issues,omitempty"`

	Goals []string `bson:"goals,omitempty" json:"goals,omitempty"`

	// Append-only; entries are only ever added via $push
	Feedback []FeedbackEntry `bson:"feedback,omitempty" json:"feedback,omitempty"`
}

// FeedbackEntry ties a user's comment to the exact plan text they were shown.
type FeedbackEntry struct {
	PlanText     string    `bson:"plan_text" json:"plan_text"`
	FeedbackText string    `bson:"feedback_text" json:"feedback_text"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// Profile holds the mutable profile fields of an account. Saving a profile
// updates exactly these fields; username, password_hash and feedback are
// untouched by design.
type Profile struct {
	Name             string   `bson:"name" json:"name"`
	Age              *int     `bson:"age" json:"age"`
	HeightCm         *float64 `bson:"height_cm" json:"height_cm"`
	WeightKg         *float64 `bson:"weight_kg" json:"weight_kg"`
	Country          string   `bson:"country" json:"country"`
	Cuisine          string   `bson:"cuisine" json:"cuisine"`
	FoodAvailability string   `bson:"food_availability" json:"food_availability"`
	HealthIssues     string   `bson:"health_issues" json:"health_issues"`
	Goals            []string `bson:"goals" json:"goals"`
}

// GoalVocabulary is the fixed set of goals the profile form offers.
var GoalVocabulary = []string{
	"Lose Fat",
	"Gain Muscle",
	"Maintain Weight",
	"Improve Stamina",
	"Manage Diabetes",
	"Heart Health",
	"Better Digestion",
	"General Fitness",
}

// ValidGoal reports whether g is part of the fixed goal vocabulary.
func ValidGoal(g string) bool {
	for _, v := range GoalVocabulary {
		if v == g {
			return true
		}
	}
	return false
}
