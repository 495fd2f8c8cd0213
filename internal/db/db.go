package db

import (
	"fmt"

	"entwine/internal/auth"
	"entwine/internal/collision"
	"entwine/internal/event"
	"entwine/internal/jobs"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return gdb, nil
}

func AutoMigrateAndIndexes(gdb *gorm.DB) error {
	// Tables
	if err := gdb.AutoMigrate(
		&auth.User{},
		&event.DataSource{},
		&event.Post{},
		&event.MediaItem{},
		&collision.Connection{},
		&collision.SharedEvent{},
		&collision.MemoryCollision{},
		&jobs.Job{},
	); err != nil {
		return err
	}

	// One connection row per canonical pair. CanonicalPair ordering makes
	// mirror-image duplicates impossible; the index enforces it at rest.
	if err := gdb.Exec(`create unique index if not exists uq_connections_pair on connections(user_a_id, user_b_id);`).Error; err != nil {
		return err
	}

	// One notification pair per (connection, direction)
	if err := gdb.Exec(`create unique index if not exists uq_collisions_direction on memory_collisions(connection_id, initiator_id, target_id);`).Error; err != nil {
		return err
	}

	// Helpful indexes
	stmts := []string{
		`create index if not exists idx_shared_events_conn_date on shared_events(connection_id, event_date desc);`,
		`create index if not exists idx_connections_user_a on connections(user_a_id);`,
		`create index if not exists idx_connections_user_b on connections(user_b_id);`,
		`create index if not exists idx_data_sources_user on data_sources(user_id);`,
		`create index if not exists idx_posts_source_posted on posts(data_source_id, posted_at);`,
		`create index if not exists idx_media_source_taken on media_items(data_source_id, taken_at);`,
		`create index if not exists idx_jobs_due on jobs(status, run_at);`,
		`create index if not exists idx_jobs_lock on jobs(status, locked_at);`,
	}
	for _, s := range stmts {
		if err := gdb.Exec(s).Error; err != nil {
			return fmt.Errorf("index exec failed: %w (sql=%s)", err, s)
		}
	}

	return nil
}
