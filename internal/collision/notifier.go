package collision

import (
	"encoding/json"
	"errors"
	"time"

	"entwine/internal/jobs"

	"gorm.io/gorm"
)

// Notifier creates the two per-direction MemoryCollision rows when a
// connection first comes into existence, and enqueues one dispatch job per
// row in the same transaction. The existence check on
// (connection, initiator, target) makes it idempotent under retries.
// Re-detection on an already-connected pair never re-notifies.
type Notifier struct{}

func (Notifier) NotifyCreated(tx *gorm.DB, conn *Connection) error {
	directions := [][2]uint64{
		{conn.UserAID, conn.UserBID},
		{conn.UserBID, conn.UserAID},
	}

	for _, d := range directions {
		initiator, target := d[0], d[1]

		var existing MemoryCollision
		err := tx.Where("connection_id=? AND initiator_id=? AND target_id=?",
			conn.ID, initiator, target).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		mc := MemoryCollision{
			ConnectionID: conn.ID,
			InitiatorID:  initiator,
			TargetID:     target,
			CreatedAt:    time.Now(),
		}
		if err := tx.Create(&mc).Error; err != nil {
			return err
		}

		// hand-off to the delivery worker, same tx
		payload, _ := json.Marshal(map[string]any{"collision_id": mc.ID})
		j := jobs.Job{
			UserID:  target,
			Type:    "COLLISION_DISPATCH",
			Payload: payload,
			RunAt:   time.Now(),
			Status:  "PENDING",
		}
		if err := tx.Create(&j).Error; err != nil {
			return err
		}
	}

	return nil
}
