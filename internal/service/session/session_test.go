package session

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/refpin/refpin/internal/migrations"
	"github.com/refpin/refpin/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.Migrate(db))

	return NewService(db)
}

func sampleImage(id string) types.SearchResult {
	return types.SearchResult{
		ID:       id,
		Title:    "cat pose (reference 1)",
		ImageURL: "https://i.pinimg.com/736x/abc.jpg",
		Board:    "Art Reference",
		Creator:  "Pinterest User",
		Width:    736,
		Height:   981,
	}
}

func TestCreateSession(t *testing.T) {
	svc := newTestService(t)

	sess, err := svc.CreateSession("animals", 60, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.PublicID)
	assert.Equal(t, "animals", sess.Theme)
	assert.Equal(t, 60, sess.DurationPerImage)
	assert.Equal(t, 10, sess.TotalImages)
	assert.Nil(t, sess.CompletedAt)
}

func TestGetSession(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateSession("portraits", 120, 5)
	require.NoError(t, err)

	got, err := svc.GetSession(created.PublicID)
	require.NoError(t, err)
	assert.Equal(t, created.PublicID, got.PublicID)
	assert.Equal(t, "portraits", got.Theme)

	_, err = svc.GetSession("nonexistent")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAddSessionImage(t *testing.T) {
	svc := newTestService(t)

	sess, err := svc.CreateSession("animals", 60, 10)
	require.NoError(t, err)

	require.NoError(t, svc.AddSessionImage(sess.PublicID, sampleImage("pin_a")))
	require.NoError(t, svc.AddSessionImage(sess.PublicID, sampleImage("pin_b")))

	count, err := svc.CountSessionImages(sess.PublicID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	err = svc.AddSessionImage("nonexistent", sampleImage("pin_c"))
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestCompleteSession(t *testing.T) {
	svc := newTestService(t)

	sess, err := svc.CreateSession("animals", 60, 10)
	require.NoError(t, err)

	completed, err := svc.CompleteSession(sess.PublicID)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)

	// completing again is a no-op and keeps the original timestamp
	again, err := svc.CompleteSession(sess.PublicID)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, completed.CompletedAt.Unix(), again.CompletedAt.Unix())

	_, err = svc.CompleteSession("nonexistent")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestListRecentSessions(t *testing.T) {
	svc := newTestService(t)

	for _, theme := range []string{"animals", "portraits", "landscapes"} {
		_, err := svc.CreateSession(theme, 60, 10)
		require.NoError(t, err)
	}

	sessions, err := svc.ListRecentSessions(2)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// a non-positive limit falls back to the default
	sessions, err = svc.ListRecentSessions(0)
	require.NoError(t, err)
	assert.Len(t, sessions, 3)
}

func TestToAPISession(t *testing.T) {
	svc := newTestService(t)

	sess, err := svc.CreateSession("animals", 60, 10)
	require.NoError(t, err)
	require.NoError(t, svc.AddSessionImage(sess.PublicID, sampleImage("pin_a")))

	api, err := svc.ToAPISession(sess)
	require.NoError(t, err)
	assert.Equal(t, sess.PublicID, api.ID)
	assert.Equal(t, "animals", api.Theme)
	assert.Equal(t, 1, api.ImagesShown)
	assert.Nil(t, api.CompletedAt)
}
