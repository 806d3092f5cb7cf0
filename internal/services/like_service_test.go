package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"match-service/internal/adapters/kafka"
	"match-service/internal/models"
	"match-service/pkg/apperr"
)

func TestLikeServiceToggle(t *testing.T) {
	ctx := context.Background()
	factory, db := newTestFactory(t)
	events := &capturePublisher{}
	service := NewLikeService(factory, events)

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")

	t.Run("RejectsSelfLike", func(t *testing.T) {
		_, err := service.Toggle(ctx, alice.ID, alice.ID)
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		assert.Empty(t, events.events)
	})

	t.Run("ToggleOnThenOff", func(t *testing.T) {
		liked, err := service.Toggle(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		event := events.last(t)
		assert.Equal(t, kafka.EventLikeToggled, event.Type)
		assert.Equal(t, alice.ID, event.ActorID)
		assert.Equal(t, bob.ID, event.SubjectID)
		require.NotNil(t, event.Liked)
		assert.True(t, *event.Liked)

		liked, err = service.Toggle(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, liked)

		event = events.last(t)
		require.NotNil(t, event.Liked)
		assert.False(t, *event.Liked)

		var count int64
		require.NoError(t, db.Model(&models.MemberLike{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("ToggleIsCommitted", func(t *testing.T) {
		liked, err := service.Toggle(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		var count int64
		require.NoError(t, db.Model(&models.MemberLike{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestLikeServiceListings(t *testing.T) {
	ctx := context.Background()
	factory, db := newTestFactory(t)
	service := NewLikeService(factory, kafka.NoopPublisher{})

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	carol := seedMember(t, db, "carol")

	_, err := service.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = service.Toggle(ctx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = service.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	t.Run("GetLikedIDs", func(t *testing.T) {
		ids, err := service.GetLikedIDs(ctx, alice.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{bob.ID, carol.ID}, ids)
	})

	t.Run("GetMemberLikesWithMutualFlag", func(t *testing.T) {
		result, err := service.GetMemberLikes(ctx, models.LikesParams{
			PageNumber: 1,
			PageSize:   10,
			Direction:  models.LikesDirectionLiked,
			MemberID:   alice.ID,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		mutualByID := map[string]bool{}
		for _, item := range result.Items {
			mutualByID[item.ID] = item.Mutual
		}
		assert.True(t, mutualByID[bob.ID])
		assert.False(t, mutualByID[carol.ID])
	})

	t.Run("InvalidPageSurfacesValidation", func(t *testing.T) {
		_, err := service.GetMemberLikes(ctx, models.LikesParams{
			PageNumber: 0,
			PageSize:   10,
			Direction:  models.LikesDirectionLiked,
			MemberID:   alice.ID,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})
}
