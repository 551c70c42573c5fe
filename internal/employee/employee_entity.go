package employee

import (
	"time"

	"github.com/google/uuid"
)

// Employee is the read-side projection of the roster. Roster CRUD belongs to
// the identity/org service; this backend only enumerates employees and
// snapshots their display names.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrgID     uuid.UUID `gorm:"type:uuid;index"`
	FullName  string
	Email     string `gorm:"uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
