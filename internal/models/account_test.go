package models

import "testing"

func TestValidGoal(t *testing.T) {
	t.Parallel()

	for _, g := range GoalVocabulary {
		if !ValidGoal(g) {
			t.Fatalf("vocabulary goal %q rejected", g)
		}
	}

	for _, g := range []string{"", "lose fat", "Fly"} {
		if ValidGoal(g) {
			t.Fatalf("unknown goal %q accepted", g)
		}
	}
}
