package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByStatus filters campaigns by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// OwnedByPrinter filters campaigns created by a given printer.
type OwnedByPrinter struct {
	PrinterID uuid.UUID
}

func (s OwnedByPrinter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("printer_id = ?", s.PrinterID)
}

// PledgedByBuyer filters campaigns carrying a live pledge from the buyer.
type PledgedByBuyer struct {
	BuyerID uuid.UUID
}

func (s PledgedByBuyer) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"id IN (SELECT campaign_id FROM pledges WHERE buyer_id = ? AND deleted_at IS NULL)",
		s.BuyerID,
	)
}

// Finalizable selects the campaigns the finalize job must visit: those
// explicitly scheduled for finalization, plus active ones whose end date has
// passed without reaching a transitional status. Terminal statuses are never
// matched, which is what makes job reruns no-ops.
type Finalizable struct {
	Now time.Time
}

func (s Finalizable) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(
		"status = ? OR (status IN ? AND end_date < ?)",
		"to_be_finalized",
		[]string{"in_progress", "confirmed"},
		s.Now,
	)
}
