package repository

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"match-service/internal/adapters/database"
	"match-service/internal/models"
)

// newTestDB opens an isolated in-memory database with the same error
// translation the production connection uses. Toggle relies on duplicate
// key violations surfacing as gorm.ErrDuplicatedKey.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedMember(t *testing.T, db *gorm.DB, name string) *models.Member {
	t.Helper()

	member := &models.Member{
		ID:          uuid.NewString(),
		Email:       name + "@example.com",
		Password:    "irrelevant",
		DisplayName: name,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}
