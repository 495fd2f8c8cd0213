package collision

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Connection is the durable pairwise record. One row per unordered user
// pair; UserAID < UserBID is an invariant enforced by CanonicalPair at
// every write site. Never deleted automatically, only hidden.
type Connection struct {
	ID      uint64 `gorm:"primaryKey"`
	UserAID uint64 `gorm:"not null"`
	UserBID uint64 `gorm:"not null"`

	ConnectionTypes  pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	SharedEventCount int            `gorm:"not null;default:0"`

	FirstSharedEvent time.Time `gorm:"not null"`
	LastSharedEvent  time.Time `gorm:"not null"`

	// Strength is recomputed from the full shared_events set on every
	// write, never adjusted incrementally, so it can always be reproduced
	// by replaying the rows.
	Strength float64 `gorm:"not null;default:0"`

	Hidden bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}

// SharedEvent is append-only. One row per candidate that passed the
// confidence filter; immutable once written.
type SharedEvent struct {
	ID           uint64 `gorm:"primaryKey"`
	ConnectionID uint64 `gorm:"index;not null"`

	EventType EventType `gorm:"type:text;not null"`
	EventDate time.Time `gorm:"not null"`

	DurationHours *float64 `gorm:"type:double precision"`
	Location      *string  `gorm:"type:text"`
	Latitude      *float64 `gorm:"type:double precision"`
	Longitude     *float64 `gorm:"type:double precision"`

	UserASourceRef string `gorm:"not null;default:''"`
	UserBSourceRef string `gorm:"not null;default:''"`

	Confidence float64         `gorm:"not null"`
	Detail     json.RawMessage `gorm:"type:jsonb;not null;default:'{}'::jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}

// MemoryCollision is the notification hand-off record, created in pairs
// (one per direction) the first time a Connection is created. At most one
// row per (connection, initiator, target).
type MemoryCollision struct {
	ID           uint64    `gorm:"primaryKey"`
	ConnectionID uint64    `gorm:"index;not null"`
	InitiatorID  uint64    `gorm:"not null"`
	TargetID     uint64    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
