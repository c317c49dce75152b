package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platewise/platewise-backend/internal/models"
)

func TestBuildMealPlanPrompt_SubstitutesProfile(t *testing.T) {
	t.Parallel()

	age := 30
	height := 170.0
	weight := 65.5
	account := &models.Account{
		Username:         "alice",
		Name:             "Alice",
		Age:              &age,
		HeightCm:         &height,
		WeightKg:         &weight,
		Country:          "India",
		Cuisine:          "South Indian",
		FoodAvailability: "rice, lentils, seasonal vegetables",
		HealthIssues:     "mild anemia",
		Goals:            []string{"Lose Fat", "Improve Stamina"},
	}

	prompt := BuildMealPlanPrompt(account)

	assert.Contains(t, prompt, "Age: 30")
	assert.Contains(t, prompt, "Height: 170.0 cm")
	assert.Contains(t, prompt, "Weight: 65.5 kg")
	assert.Contains(t, prompt, "Lose Fat")
	assert.Contains(t, prompt, "Improve Stamina")
	assert.Contains(t, prompt, "South Indian")
	assert.Contains(t, prompt, "mild anemia")
	assert.Contains(t, prompt, "Breakfast, Lunch, and Dinner")
	assert.Contains(t, prompt, "Markdown")
}

func TestBuildMealPlanPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	age := 44
	account := &models.Account{Username: "bob", Name: "Bob", Age: &age, Goals: []string{"Heart Health"}}

	if BuildMealPlanPrompt(account) != BuildMealPlanPrompt(account) {
		t.Fatalf("prompt is not deterministic for the same profile")
	}
}

func TestBuildMealPlanPrompt_OmitsUnsetFields(t *testing.T) {
	t.Parallel()

	account := &models.Account{Username: "bob", Name: "Bob"}
	prompt := BuildMealPlanPrompt(account)

	assert.NotContains(t, prompt, "Age:")
	assert.NotContains(t, prompt, "Height:")
	assert.NotContains(t, prompt, "Health issues:")
	assert.True(t, strings.Contains(prompt, "Name: Bob"))
}
