package event

import (
	"time"

	"github.com/eatech/platform/internal/service/models/order"
)

const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
)

// ChangeRecord is the note pushed to the tenant's live feed after every
// order write. It carries the full order snapshot so subscribers can upsert
// their mirror without a read-back.
type ChangeRecord struct {
	Kind   string      `json:"kind"`
	Order  order.Order `json:"order"`
	SentAt time.Time   `json:"sentAt"`
}
