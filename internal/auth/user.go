package auth

import "time"

type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	DisplayName  string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`

	// CollisionDetectionEnabled is the opt-in flag the detection engine reads.
	// Pairs where either side is false are never evaluated.
	CollisionDetectionEnabled bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
}
