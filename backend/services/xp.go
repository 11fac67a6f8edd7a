package services

import (
	"gorm.io/gorm"

	"habitflow/backend/apperr"
	"habitflow/backend/models"
)

// XPLedger accumulates experience points. Awards happen exactly once per
// challenge completion, inside the completion transaction, and are never
// reversed: ending or deleting a completed challenge does not claw back XP.
type XPLedger struct{}

func NewXPLedger() *XPLedger {
	return &XPLedger{}
}

// Award adds amount to the user's total as an atomic adjustment against
// stored state, never a read-modify-write.
func (l *XPLedger) Award(tx *gorm.DB, userID uint, amount int) error {
	if amount < 0 {
		return apperr.InvalidInput("XP amount cannot be negative")
	}
	if amount == 0 {
		return nil
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("total_xp", gorm.Expr("total_xp + ?", amount)).Error; err != nil {
		return apperr.Internal("award xp", err)
	}
	return nil
}
