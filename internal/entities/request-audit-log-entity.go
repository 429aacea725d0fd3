package entities

import (
	"time"

	"github.com/google/uuid"

	"gearguard/pkg/constants"
)

// RequestAuditLog records every stage change, including the initial
// creation (old stage null, new stage "new").
type RequestAuditLog struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	RequestID uuid.UUID        `json:"request_id" db:"request_id"`
	OldStage  *constants.Stage `json:"old_stage,omitempty" db:"old_stage"`
	NewStage  constants.Stage  `json:"new_stage" db:"new_stage"`
	ChangedBy uuid.UUID        `json:"changed_by" db:"changed_by"`
	ChangedAt time.Time        `json:"changed_at" db:"changed_at"`

	// Joined, not a column.
	ChangedByName *string `json:"changed_by_name,omitempty" db:"-"`
}
