package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"match-service/internal/models"
	"match-service/internal/pagination"
)

// MessageRepository is the store for direct messages. Soft-delete flags
// only ever move false->true; Hide writes a single side's column and
// PurgeIfHiddenForBoth decides the purge against the stored row, so two
// racing deletes cannot revert each other's flag.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// GetByID returns the message or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// GetThread returns every message between the two members, in both
	// directions, oldest first, excluding messages the current member
	// has hidden on their side.
	GetThread(ctx context.Context, currentID, otherID string) ([]models.MessageResponse, error)
	// GetForMember returns one container page for the member, most
	// recent first.
	GetForMember(ctx context.Context, params models.MessageParams) (*pagination.Result[models.MessageResponse], error)
	// Hide sets the soft-delete flag for memberID's side. Only that one
	// column is written, so a concurrent delete by the other side is
	// never reverted.
	Hide(ctx context.Context, message *models.Message, memberID string) error
	// PurgeIfHiddenForBoth removes the row only when the stored flags
	// show both sides hidden. purged reports whether a row was removed.
	PurgeIfHiddenForBoth(ctx context.Context, id string) (purged bool, err error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) GetThread(ctx context.Context, currentID, otherID string) ([]models.MessageResponse, error) {
	var messages []models.Message
	err := r.db.WithContext(ctx).
		Where(
			"(sender_id = ? AND recipient_id = ? AND sender_deleted = ?) OR "+
				"(sender_id = ? AND recipient_id = ? AND recipient_deleted = ?)",
			currentID, otherID, false,
			otherID, currentID, false,
		).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToResponse())
	}
	return responses, nil
}

func (r *messageRepository) GetForMember(ctx context.Context, params models.MessageParams) (*pagination.Result[models.MessageResponse], error) {
	query := r.db.WithContext(ctx).Model(&models.Message{})

	switch params.Container {
	case models.ContainerOutbox:
		query = query.Where("sender_id = ? AND sender_deleted = ?", params.MemberID, false)
	case models.ContainerUnread:
		query = query.Where("recipient_id = ? AND recipient_deleted = ? AND date_read IS NULL",
			params.MemberID, false)
	default: // inbox
		query = query.Where("recipient_id = ? AND recipient_deleted = ?", params.MemberID, false)
	}

	query = query.Order("created_at DESC, id ASC")

	return pagination.Paginate[models.MessageResponse](query, params.PageNumber, params.PageSize)
}

func (r *messageRepository) Hide(ctx context.Context, message *models.Message, memberID string) error {
	var column string
	switch memberID {
	case message.SenderID:
		column = "sender_deleted"
	case message.RecipientID:
		column = "recipient_deleted"
	default:
		return fmt.Errorf("member %s is no party to message %s", memberID, message.ID)
	}

	return r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", message.ID).
		Update(column, true).Error
}

func (r *messageRepository) PurgeIfHiddenForBoth(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND sender_deleted = ? AND recipient_deleted = ?", id, true, true).
		Delete(&models.Message{})
	return result.RowsAffected > 0, result.Error
}
