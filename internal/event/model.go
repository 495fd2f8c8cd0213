package event

import "time"

// DataSource is the ownership chain between a user and their synced records.
// The connectors that populate these tables live outside this service.
type DataSource struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"index;not null"`
	Provider  string    `gorm:"not null"` // e.g. "instagram", "gmail"
	CreatedAt time.Time `gorm:"not null;default:now()"`
}

// Post is a normalized text record synced from a provider.
type Post struct {
	ID           uint64    `gorm:"primaryKey"`
	DataSourceID uint64    `gorm:"index;not null"`
	Provider     string    `gorm:"not null"`
	PostedAt     time.Time `gorm:"index;not null"`
	Text         string    `gorm:"type:text;not null;default:''"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}

// MediaItem is a synced photo/video record. Coordinates are optional;
// items without them are skipped by the spatial detector.
type MediaItem struct {
	ID           uint64    `gorm:"primaryKey"`
	DataSourceID uint64    `gorm:"index;not null"`
	TakenAt      time.Time `gorm:"index;not null"`
	Latitude     *float64  `gorm:"type:double precision"`
	Longitude    *float64  `gorm:"type:double precision"`
	LocationName string    `gorm:"not null;default:''"`
	SourceURL    string    `gorm:"not null;default:''"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}
