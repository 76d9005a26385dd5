// Package models contains database model definitions.
package models

import "time"

// Audit carries the audit metadata every entity in the system shares.
// Mutating code paths receive the responsible actor as an explicit
// parameter and record it in CreatedBy or ModifiedBy; automated writes
// use the reserved actor name "system".
type Audit struct {
	// CreatedAt is the timestamp when the record was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the record was last updated (managed by GORM).
	UpdatedAt time.Time
	// DeletedAt is the soft delete timestamp (nil if not deleted).
	DeletedAt *time.Time
	// CreatedBy is the actor that created the record.
	CreatedBy string `gorm:"size:100"`
	// ModifiedBy is the actor that last modified the record.
	ModifiedBy string `gorm:"size:100"`
	// Inactive is the soft-delete/deactivation flag. Records are never hard
	// deleted once referenced; they are flagged inactive instead.
	Inactive bool `gorm:"default:false"`
}

// SystemActor is the actor name recorded for automated writes.
const SystemActor = "system"
