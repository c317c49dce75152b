package llm

import (
	"fmt"
	"strings"

	"github.com/platewise/platewise-backend/internal/models"
)

// BuildMealPlanPrompt renders the fixed daily meal-plan instruction with the
// user's profile substituted in. Output is deterministic for a given profile.
func BuildMealPlanPrompt(account *models.Account) string {
	var prompt strings.Builder

	prompt.WriteString("You are a professional nutritionist. Create a personalized one-day meal plan for the following person:\n\n")

	if account.Name != "" {
		prompt.WriteString(fmt.Sprintf("Name: %s\n", account.Name))
	}
	if account.Age != nil {
		prompt.WriteString(fmt.Sprintf("Age: %d\n", *account.Age))
	}
	if account.HeightCm != nil {
		prompt.WriteString(fmt.Sprintf("Height: %.1f cm\n", *account.HeightCm))
	}
	if account.WeightKg != nil {
		prompt.WriteString(fmt.Sprintf("Weight: %.1f kg\n", *account.WeightKg))
	}
	if account.Country != "" {
		prompt.WriteString(fmt.Sprintf("Country: %s\n", account.Country))
	}
	if account.Cuisine != "" {
		prompt.WriteString(fmt.Sprintf("Preferred cuisine: %s\n", account.Cuisine))
	}
	if account.FoodAvailability != "" {
		prompt.WriteString(fmt.Sprintf("Locally available foods: %s\n", account.FoodAvailability))
	}
	if account.HealthIssues != "" {
		prompt.WriteString(fmt.Sprintf("Health issues: %s\n", account.HealthIssues))
	}
	if len(account.Goals) > 0 {
		prompt.WriteString(fmt.Sprintf("Goals: %s\n", strings.Join(account.Goals, ", ")))
	}

	prompt.WriteString("\nInstructions:\n")
	prompt.WriteString("1. Start with a short analysis of the person's goals and how the plan supports them.\n")
	prompt.WriteString("2. Provide exactly 3 meals: Breakfast, Lunch, and Dinner.\n")
	prompt.WriteString("3. For each meal include:\n")
	prompt.WriteString("   - Recipe name\n")
	prompt.WriteString("   - Ingredients with approximate quantities\n")
	prompt.WriteString("   - A link to a similar recipe online\n")
	prompt.WriteString("   - The main health benefit of the meal\n")
	prompt.WriteString("   - Any caution relevant to the listed health issues\n")
	prompt.WriteString("4. Prefer the preferred cuisine and locally available foods where possible.\n")
	prompt.WriteString("5. Format the entire response in Markdown with a heading per meal.\n")

	return prompt.String()
}
