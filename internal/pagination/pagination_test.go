package pagination

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"match-service/pkg/apperr"
)

type pageItem struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:50"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&pageItem{}))
	return db
}

func seedItems(t *testing.T, db *gorm.DB, n int) {
	t.Helper()

	for i := 1; i <= n; i++ {
		require.NoError(t, db.Create(&pageItem{Name: fmt.Sprintf("item-%02d", i)}).Error)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("ClampsOversizedPage", func(t *testing.T) {
		number, size, err := Normalize(2, 500)
		require.NoError(t, err)
		assert.Equal(t, 2, number)
		assert.Equal(t, MaxPageSize, size)
	})

	t.Run("DefaultsUnsetSize", func(t *testing.T) {
		_, size, err := Normalize(1, 0)
		require.NoError(t, err)
		assert.Equal(t, DefaultPageSize, size)
	})

	t.Run("RejectsPageBelowOne", func(t *testing.T) {
		_, _, err := Normalize(0, 10)
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))

		_, _, err = Normalize(-3, 10)
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})
}

func TestPaginate(t *testing.T) {
	db := newTestDB(t)
	seedItems(t, db, 25)

	query := func() *gorm.DB {
		return db.Model(&pageItem{}).Order("id ASC")
	}

	t.Run("FirstPage", func(t *testing.T) {
		result, err := Paginate[pageItem](query(), 1, 10)
		require.NoError(t, err)

		assert.Len(t, result.Items, 10)
		assert.Equal(t, "item-01", result.Items[0].Name)
		assert.Equal(t, 1, result.CurrentPage)
		assert.Equal(t, 10, result.PageSize)
		assert.Equal(t, int64(25), result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("LastPartialPage", func(t *testing.T) {
		result, err := Paginate[pageItem](query(), 3, 10)
		require.NoError(t, err)

		assert.Len(t, result.Items, 5)
		assert.Equal(t, "item-21", result.Items[0].Name)
		assert.Equal(t, int64(25), result.TotalCount)
	})

	t.Run("PageBeyondEndIsEmptyNotError", func(t *testing.T) {
		result, err := Paginate[pageItem](query(), 9, 10)
		require.NoError(t, err)

		assert.Empty(t, result.Items)
		assert.NotNil(t, result.Items)
		assert.Equal(t, 9, result.CurrentPage)
		assert.Equal(t, int64(25), result.TotalCount)
		assert.Equal(t, 3, result.TotalPages)
	})

	t.Run("InvalidPageNumber", func(t *testing.T) {
		_, err := Paginate[pageItem](query(), 0, 10)
		require.Error(t, err)
		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
	})

	t.Run("FilteredQueryCountsOnlyMatches", func(t *testing.T) {
		filtered := db.Model(&pageItem{}).Where("name LIKE ?", "item-0%").Order("id ASC")
		result, err := Paginate[pageItem](filtered, 1, 5)
		require.NoError(t, err)

		assert.Len(t, result.Items, 5)
		assert.Equal(t, int64(9), result.TotalCount)
		assert.Equal(t, 2, result.TotalPages)
	})

	t.Run("EmptyTable", func(t *testing.T) {
		empty := newTestDB(t)
		result, err := Paginate[pageItem](empty.Model(&pageItem{}), 1, 10)
		require.NoError(t, err)

		assert.Empty(t, result.Items)
		assert.Equal(t, int64(0), result.TotalCount)
		assert.Equal(t, 0, result.TotalPages)
	})
}
