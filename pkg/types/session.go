package types

import "time"

// CreateSessionRequest is the input for starting a new practice session.
type CreateSessionRequest struct {
	Theme            string `json:"theme" binding:"required"`
	DurationPerImage int    `json:"duration_per_image"`
	TotalImages      int    `json:"total_images"`
}

// AddSessionImageRequest records an image that was shown during a session.
type AddSessionImageRequest struct {
	Image SearchResult `json:"image" binding:"required"`
}

// PracticeSession is a practice session as exposed by the HTTP API.
type PracticeSession struct {
	ID               string     `json:"id"`
	Theme            string     `json:"theme"`
	DurationPerImage int        `json:"duration_per_image"`
	TotalImages      int        `json:"total_images"`
	ImagesShown      int        `json:"images_shown"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}
