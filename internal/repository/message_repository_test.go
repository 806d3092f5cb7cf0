package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"match-service/internal/models"
)

func seedMessage(t *testing.T, db *gorm.DB, senderID, recipientID, content string, at time.Time) *models.Message {
	t.Helper()

	message := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   at,
	}
	require.NoError(t, db.Create(message).Error)
	return message
}

func TestMessageRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	seeded := seedMessage(t, db, alice.ID, bob.ID, "hello", time.Now())

	found, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "hello", found.Content)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepositoryGetThread(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	carol := seedMember(t, db, "carol")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := seedMessage(t, db, alice.ID, bob.ID, "hi bob", base)
	second := seedMessage(t, db, bob.ID, alice.ID, "hi alice", base.Add(time.Minute))
	third := seedMessage(t, db, alice.ID, bob.ID, "how are you", base.Add(2*time.Minute))
	seedMessage(t, db, alice.ID, carol.ID, "unrelated", base.Add(3*time.Minute))

	t.Run("BothDirectionsOldestFirst", func(t *testing.T) {
		thread, err := repo.GetThread(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, thread, 3)

		assert.Equal(t, first.ID, thread[0].ID)
		assert.Equal(t, second.ID, thread[1].ID)
		assert.Equal(t, third.ID, thread[2].ID)
	})

	t.Run("ExcludesMessagesHiddenForCaller", func(t *testing.T) {
		// alice hid the first message on her side.
		require.NoError(t, db.Model(&models.Message{}).
			Where("id = ?", first.ID).
			Update("sender_deleted", true).Error)

		thread, err := repo.GetThread(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.Len(t, thread, 2)
		assert.Equal(t, second.ID, thread[0].ID)

		// bob still sees all three.
		thread, err = repo.GetThread(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.Len(t, thread, 3)
	})
}

func TestMessageRepositoryGetForMember(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	older := seedMessage(t, db, bob.ID, alice.ID, "first", base)
	newer := seedMessage(t, db, bob.ID, alice.ID, "second", base.Add(time.Minute))
	sent := seedMessage(t, db, alice.ID, bob.ID, "reply", base.Add(2*time.Minute))

	readAt := base.Add(90 * time.Second)
	require.NoError(t, db.Model(&models.Message{}).
		Where("id = ?", older.ID).
		Update("date_read", readAt).Error)

	t.Run("InboxNewestFirst", func(t *testing.T) {
		result, err := repo.GetForMember(ctx, models.MessageParams{
			PageNumber: 1,
			PageSize:   10,
			Container:  models.ContainerInbox,
			MemberID:   alice.ID,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)

		assert.Equal(t, newer.ID, result.Items[0].ID)
		assert.Equal(t, older.ID, result.Items[1].ID)
		assert.Equal(t, int64(2), result.TotalCount)
	})

	t.Run("Outbox", func(t *testing.T) {
		result, err := repo.GetForMember(ctx, models.MessageParams{
			PageNumber: 1,
			PageSize:   10,
			Container:  models.ContainerOutbox,
			MemberID:   alice.ID,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, sent.ID, result.Items[0].ID)
	})

	t.Run("UnreadOnly", func(t *testing.T) {
		result, err := repo.GetForMember(ctx, models.MessageParams{
			PageNumber: 1,
			PageSize:   10,
			Container:  models.ContainerUnread,
			MemberID:   alice.ID,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, newer.ID, result.Items[0].ID)
		assert.Nil(t, result.Items[0].DateRead)
	})

	t.Run("HiddenMessagesLeaveTheContainer", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Message{}).
			Where("id = ?", newer.ID).
			Update("recipient_deleted", true).Error)

		result, err := repo.GetForMember(ctx, models.MessageParams{
			PageNumber: 1,
			PageSize:   10,
			Container:  models.ContainerInbox,
			MemberID:   alice.ID,
		})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, older.ID, result.Items[0].ID)
		assert.Equal(t, int64(1), result.TotalCount)
	})
}

func TestMessageRepositoryHideAndPurge(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	carol := seedMember(t, db, "carol")
	message := seedMessage(t, db, alice.ID, bob.ID, "hello", time.Now())

	t.Run("HideWritesOnlyTheCallersColumn", func(t *testing.T) {
		require.NoError(t, repo.Hide(ctx, message, alice.ID))

		stored, err := repo.GetByID(ctx, message.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.True(t, stored.SenderDeleted)
		assert.False(t, stored.RecipientDeleted)
		assert.Equal(t, "hello", stored.Content)
	})

	t.Run("HideRejectsNonParty", func(t *testing.T) {
		require.Error(t, repo.Hide(ctx, message, carol.ID))
	})

	t.Run("PurgeNeedsBothSidesHidden", func(t *testing.T) {
		purged, err := repo.PurgeIfHiddenForBoth(ctx, message.ID)
		require.NoError(t, err)
		assert.False(t, purged)

		stored, err := repo.GetByID(ctx, message.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("PurgeOnceBothSidesHidden", func(t *testing.T) {
		require.NoError(t, repo.Hide(ctx, message, bob.ID))

		purged, err := repo.PurgeIfHiddenForBoth(ctx, message.ID)
		require.NoError(t, err)
		assert.True(t, purged)

		stored, err := repo.GetByID(ctx, message.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

// Both parties load the message, then hide their sides one after the
// other, each from its own stale copy. Neither write may revert the
// other's committed flag, and the purge must still fire.
func TestMessageRepositoryInterleavedHides(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewMessageRepository(db)

	alice := seedMember(t, db, "alice")
	bob := seedMember(t, db, "bob")
	message := seedMessage(t, db, alice.ID, bob.ID, "hello", time.Now())

	aliceCopy, err := repo.GetByID(ctx, message.ID)
	require.NoError(t, err)
	bobCopy, err := repo.GetByID(ctx, message.ID)
	require.NoError(t, err)

	_, ok := aliceCopy.HideFor(alice.ID)
	require.True(t, ok)
	require.NoError(t, repo.Hide(ctx, aliceCopy, alice.ID))

	// bobCopy still has SenderDeleted false; hiding bob's side must not
	// write that stale value back.
	_, ok = bobCopy.HideFor(bob.ID)
	require.True(t, ok)
	require.NoError(t, repo.Hide(ctx, bobCopy, bob.ID))

	stored, err := repo.GetByID(ctx, message.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.SenderDeleted)
	assert.True(t, stored.RecipientDeleted)

	purged, err := repo.PurgeIfHiddenForBoth(ctx, message.ID)
	require.NoError(t, err)
	assert.True(t, purged)
}
