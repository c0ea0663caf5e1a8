// Package session provides practice session tracking for the refpin server.
//
// The search tools themselves stay stateless; sessions are a separate,
// explicitly-invoked facility for recording which images a practice session
// showed, exposed over the HTTP API.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/refpin/refpin/internal/model"
	"github.com/refpin/refpin/pkg/types"
	"gorm.io/gorm"
)

// ErrSessionNotFound is returned when no session exists for the given id.
var ErrSessionNotFound = errors.New("practice session not found")

// DefaultRecentLimit caps how many sessions a history query returns by default.
const DefaultRecentLimit = 20

// Service provides CRUD operations for practice sessions.
type Service struct {
	db *gorm.DB
}

// NewService creates a new session service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateSession starts a new practice session and returns its public id.
func (s *Service) CreateSession(theme string, durationPerImage, totalImages int) (*model.PracticeSession, error) {
	if theme == "" {
		return nil, fmt.Errorf("session theme must not be empty")
	}
	sess := &model.PracticeSession{
		PublicID:         uuid.NewString(),
		Theme:            theme,
		DurationPerImage: durationPerImage,
		TotalImages:      totalImages,
	}
	if err := s.db.Create(sess).Error; err != nil {
		return nil, fmt.Errorf("failed to create practice session: %w", err)
	}
	return sess, nil
}

// AddSessionImage records an image shown during the session.
// The full result record is kept as JSON for later replay.
func (s *Service) AddSessionImage(publicID string, image types.SearchResult) error {
	sess, err := s.getByPublicID(publicID)
	if err != nil {
		return err
	}

	meta, err := json.Marshal(image)
	if err != nil {
		return fmt.Errorf("failed to marshal image record: %w", err)
	}

	img := &model.SessionImage{
		SessionID: sess.ID,
		ImageID:   image.ID,
		Title:     image.Title,
		ImageURL:  image.ImageURL,
		Meta:      meta,
	}
	if err := s.db.Create(img).Error; err != nil {
		return fmt.Errorf("failed to record session image: %w", err)
	}
	return nil
}

// CompleteSession marks the session as finished.
// Completing an already-completed session is a no-op.
func (s *Service) CompleteSession(publicID string) (*model.PracticeSession, error) {
	sess, err := s.getByPublicID(publicID)
	if err != nil {
		return nil, err
	}
	if sess.CompletedAt != nil {
		return sess, nil
	}

	now := time.Now()
	sess.CompletedAt = &now
	if err := s.db.Save(sess).Error; err != nil {
		return nil, fmt.Errorf("failed to complete practice session: %w", err)
	}
	return sess, nil
}

// GetSession returns the session with the given public id.
func (s *Service) GetSession(publicID string) (*model.PracticeSession, error) {
	return s.getByPublicID(publicID)
}

// ListRecentSessions returns up to limit sessions, newest first.
// A non-positive limit falls back to DefaultRecentLimit.
func (s *Service) ListRecentSessions(limit int) ([]model.PracticeSession, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var sessions []model.PracticeSession
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("failed to list practice sessions: %w", err)
	}
	return sessions, nil
}

// CountSessionImages returns how many images the session has shown so far.
func (s *Service) CountSessionImages(publicID string) (int, error) {
	sess, err := s.getByPublicID(publicID)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := s.db.Model(&model.SessionImage{}).Where("session_id = ?", sess.ID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count session images: %w", err)
	}
	return int(count), nil
}

func (s *Service) getByPublicID(publicID string) (*model.PracticeSession, error) {
	var sess model.PracticeSession
	if err := s.db.Where("public_id = ?", publicID).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get practice session %s: %w", publicID, err)
	}
	return &sess, nil
}

// ToAPISession converts a session model to its API representation.
func (s *Service) ToAPISession(sess *model.PracticeSession) (*types.PracticeSession, error) {
	shown, err := s.CountSessionImages(sess.PublicID)
	if err != nil {
		return nil, err
	}
	return &types.PracticeSession{
		ID:               sess.PublicID,
		Theme:            sess.Theme,
		DurationPerImage: sess.DurationPerImage,
		TotalImages:      sess.TotalImages,
		ImagesShown:      shown,
		CreatedAt:        sess.CreatedAt,
		CompletedAt:      sess.CompletedAt,
	}, nil
}
