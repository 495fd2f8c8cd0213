package event

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// UserEventData is one user's full normalized event set, as consumed by the
// detection engine.
type UserEventData struct {
	Posts []Post
	Media []MediaItem
}

// Identity is the slice of the user record the engine needs: who the user is
// for mention matching, and whether they opted in.
type Identity struct {
	ID                        uint64
	Email                     string
	DisplayName               string
	CollisionDetectionEnabled bool
}

type Repo struct {
	DB *gorm.DB
}

func (r *Repo) GetUserEventData(ctx context.Context, userID uint64) (UserEventData, error) {
	var out UserEventData

	if err := r.DB.WithContext(ctx).
		Joins("join data_sources ds on ds.id = posts.data_source_id").
		Where("ds.user_id = ?", userID).
		Order("posts.posted_at asc").
		Find(&out.Posts).Error; err != nil {
		return UserEventData{}, err
	}

	if err := r.DB.WithContext(ctx).
		Joins("join data_sources ds on ds.id = media_items.data_source_id").
		Where("ds.user_id = ?", userID).
		Order("media_items.taken_at asc").
		Find(&out.Media).Error; err != nil {
		return UserEventData{}, err
	}

	return out, nil
}

func (r *Repo) GetIdentity(ctx context.Context, userID uint64) (Identity, error) {
	var id Identity
	err := r.DB.WithContext(ctx).Raw(`
		select id, email, display_name, collision_detection_enabled
		from users
		where id = ?
	`, userID).Scan(&id).Error
	if err != nil {
		return Identity{}, err
	}
	if id.ID == 0 {
		return Identity{}, gorm.ErrRecordNotFound
	}
	return id, nil
}

func (r *Repo) GetOptedInUsers(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Raw(`
		select id from users
		where collision_detection_enabled = true
		order by id asc
	`).Scan(&ids).Error
	return ids, err
}

// GetRecentlyActiveUsers returns opted-in users with any record synced since
// the given time. Drives the incremental sweep.
func (r *Repo) GetRecentlyActiveUsers(ctx context.Context, since time.Time) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Raw(`
		select distinct u.id
		from users u
		join data_sources ds on ds.user_id = u.id
		where u.collision_detection_enabled = true
		  and (
			exists (select 1 from posts p where p.data_source_id = ds.id and p.created_at >= ?)
			or exists (select 1 from media_items m where m.data_source_id = ds.id and m.created_at >= ?)
		  )
		order by u.id asc
	`, since, since).Scan(&ids).Error
	return ids, err
}
