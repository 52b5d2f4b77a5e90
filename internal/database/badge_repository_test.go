package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thomaslekieffre/speedcube-master-sub000/internal/learning"
	"github.com/thomaslekieffre/speedcube-master-sub000/pkg/models"
)

func TestBadgesSeededOnConnect(t *testing.T) {
	setupTestDB(t)
	repo := NewBadgeRepository()

	badges, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, badges, 3)

	badge, err := repo.GetByName(models.BadgeFirstMastery)
	require.NoError(t, err)
	assert.NotEmpty(t, badge.Description)

	_, err = repo.GetByName("No Such Badge")
	assert.ErrorIs(t, err, learning.ErrNotFound)
}

func TestBadgeAwardIsIdempotent(t *testing.T) {
	setupTestDB(t)
	repo := NewBadgeRepository()

	badge, err := repo.GetByName(models.BadgeFirstReview)
	require.NoError(t, err)

	require.NoError(t, repo.Award(100, badge.ID))
	require.NoError(t, repo.Award(100, badge.ID))

	earned, err := repo.GetEarnedBadges(100)
	require.NoError(t, err)
	require.Len(t, earned, 1)
	assert.Equal(t, models.BadgeFirstReview, earned[0].Name)

	// Another user has earned nothing
	earned, err = repo.GetEarnedBadges(200)
	require.NoError(t, err)
	assert.Empty(t, earned)
}
