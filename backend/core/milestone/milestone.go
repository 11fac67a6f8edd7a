// Package milestone evaluates challenge milestone unlocks.
package milestone

import "habitflow/backend/models"

// Unlocked returns the milestones whose day threshold is exactly the new
// completedDays value. completedDays is monotonic and hits each value
// once per enrollment, so every milestone unlocks at most once.
func Unlocked(milestones []models.Milestone, completedDays int) []models.Milestone {
	unlocked := []models.Milestone{}
	for _, m := range milestones {
		if m.DayCount == completedDays {
			unlocked = append(unlocked, m)
		}
	}
	return unlocked
}
