// Package model contains the database models for the refpin server.
package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PracticeSession tracks one timed reference-drawing practice session.
type PracticeSession struct {
	gorm.Model

	// PublicID is the uuid exposed by the API. The numeric primary key
	// never leaves the database layer.
	PublicID string `json:"public_id" gorm:"uniqueIndex;not null"`

	Theme            string `json:"theme" gorm:"not null"`
	DurationPerImage int    `json:"duration_per_image"`
	TotalImages      int    `json:"total_images"`

	CompletedAt *time.Time `json:"completed_at"`

	Images []SessionImage `json:"-" gorm:"foreignKey:SessionID"`
}

// SessionImage records a single image shown during a practice session.
type SessionImage struct {
	gorm.Model

	SessionID uint `json:"-" gorm:"not null;index"`

	ImageID  string `json:"image_id" gorm:"not null"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`

	// Meta holds the full SearchResult record as it was returned to the
	// caller, for later replay.
	Meta datatypes.JSON `json:"meta" gorm:"type:jsonb"`
}
