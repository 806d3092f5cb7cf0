package uow

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"match-service/internal/adapters/database"
	"match-service/internal/models"
	"match-service/pkg/apperr"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testMember(name string) *models.Member {
	return &models.Member{
		ID:          uuid.NewString(),
		Email:       name + "@example.com",
		Password:    "irrelevant",
		DisplayName: name,
	}
}

func TestUnitOfWorkCompletePersists(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	factory := NewFactory(db)

	unit, err := factory.New(ctx)
	require.NoError(t, err)
	defer unit.Rollback()

	member := testMember("alice")
	require.NoError(t, unit.Members().Create(ctx, member))
	require.NoError(t, unit.Complete(ctx))

	var count int64
	require.NoError(t, db.Model(&models.Member{}).Where("id = ?", member.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUnitOfWorkRollbackDiscards(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	factory := NewFactory(db)

	unit, err := factory.New(ctx)
	require.NoError(t, err)

	member := testMember("alice")
	require.NoError(t, unit.Members().Create(ctx, member))
	unit.Rollback()

	var count int64
	require.NoError(t, db.Model(&models.Member{}).Where("id = ?", member.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUnitOfWorkWritesSpanStores(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	factory := NewFactory(db)

	unit, err := factory.New(ctx)
	require.NoError(t, err)

	alice := testMember("alice")
	bob := testMember("bob")
	require.NoError(t, unit.Members().Create(ctx, alice))
	require.NoError(t, unit.Members().Create(ctx, bob))

	// The likes store sees the members staged by the member store: both
	// ride the same transaction.
	liked, err := unit.Likes().Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	unit.Rollback()

	// The rollback discarded the members and the edge together.
	var count int64
	require.NoError(t, db.Model(&models.Member{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	require.NoError(t, db.Model(&models.MemberLike{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUnitOfWorkDoneGuards(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	factory := NewFactory(db)

	t.Run("RollbackAfterCompleteIsNoop", func(t *testing.T) {
		unit, err := factory.New(ctx)
		require.NoError(t, err)

		member := testMember("alice")
		require.NoError(t, unit.Members().Create(ctx, member))
		require.NoError(t, unit.Complete(ctx))
		unit.Rollback()

		var count int64
		require.NoError(t, db.Model(&models.Member{}).Where("id = ?", member.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("CompleteTwiceFails", func(t *testing.T) {
		unit, err := factory.New(ctx)
		require.NoError(t, err)

		require.NoError(t, unit.Complete(ctx))
		err = unit.Complete(ctx)
		require.Error(t, err)
		assert.Equal(t, apperr.Persistence, apperr.KindOf(err))
	})

	t.Run("RepositoriesAreMemoized", func(t *testing.T) {
		unit, err := factory.New(ctx)
		require.NoError(t, err)
		defer unit.Rollback()

		assert.Same(t, unit.Members(), unit.Members())
		assert.Same(t, unit.Likes(), unit.Likes())
		assert.Same(t, unit.Messages(), unit.Messages())
	})
}
