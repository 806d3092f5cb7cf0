package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"match-service/internal/adapters/database"
	"match-service/internal/adapters/kafka"
	"match-service/internal/models"
	"match-service/internal/uow"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestFactory(t *testing.T) (uow.Factory, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	return uow.NewFactory(db), db
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

// capturePublisher records every published event for assertions.
type capturePublisher struct {
	events []kafka.InteractionEvent
}

func (p *capturePublisher) Publish(event kafka.InteractionEvent) error {
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) last(t *testing.T) kafka.InteractionEvent {
	t.Helper()
	require.NotEmpty(t, p.events)
	return p.events[len(p.events)-1]
}

// fakePhotoStorage stands in for the image host.
type fakePhotoStorage struct {
	uploaded []string
	deleted  []string
	failNext bool
}

func (f *fakePhotoStorage) UploadImage(_ context.Context, file *multipart.FileHeader) (string, string, error) {
	if f.failNext {
		f.failNext = false
		return "", "", fmt.Errorf("image host unavailable")
	}
	objectName := "photos/" + file.Filename
	f.uploaded = append(f.uploaded, objectName)
	return "https://img.test/" + objectName, objectName, nil
}

func (f *fakePhotoStorage) DeleteImage(_ context.Context, objectName string) error {
	f.deleted = append(f.deleted, objectName)
	return nil
}
