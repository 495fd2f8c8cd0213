package jobs

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"entwine/internal/logger"

	"gorm.io/gorm"
)

// Worker drains the dispatch queue. Delivery itself (push/email) is owned by
// the notification system; the hand-off here is emitting the dispatch record
// and marking the job done.
type Worker struct {
	ID   string
	Repo *Repo
	DB   *gorm.DB
	Log  *logger.Logger
}

type collisionRow struct {
	ID           uint64 `gorm:"column:id"`
	ConnectionID uint64 `gorm:"column:connection_id"`
	InitiatorID  uint64 `gorm:"column:initiator_id"`
	TargetID     uint64 `gorm:"column:target_id"`
}

func (collisionRow) TableName() string { return "memory_collisions" }

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim error", "err", err)
				continue
			}
			if job == nil {
				continue
			}
			w.handle(job)
		}
	}
}

func (w *Worker) handle(job *Job) {
	switch job.Type {
	case "COLLISION_DISPATCH":
		w.handleCollisionDispatch(job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleCollisionDispatch(job *Job) {
	type payload struct {
		CollisionID uint64 `json:"collision_id"`
	}
	var p payload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		_ = w.Repo.MarkFailed(job.ID, "bad payload")
		return
	}

	var row collisionRow
	if err := w.DB.
		Where("id=?", p.CollisionID).
		First(&row).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			_ = w.Repo.MarkDone(job.ID)
			return
		}
		w.retry(job, "db read error")
		return
	}

	w.Log.Info("collision dispatch",
		"collision_id", row.ID,
		"connection_id", row.ConnectionID,
		"initiator_id", row.InitiatorID,
		"target_id", row.TargetID,
	)
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
