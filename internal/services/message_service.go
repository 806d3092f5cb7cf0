package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"match-service/internal/adapters/kafka"
	"match-service/internal/models"
	"match-service/internal/pagination"
	"match-service/internal/uow"
	"match-service/pkg/apperr"
)

// MessageService owns the message lifecycle: creation, the two mailbox
// views, threads, and the two-sided delete state machine.
type MessageService struct {
	uowFactory uow.Factory
	events     kafka.Publisher
}

func NewMessageService(uowFactory uow.Factory, events kafka.Publisher) *MessageService {
	return &MessageService{uowFactory: uowFactory, events: events}
}

// Create sends a message from senderID. Both parties must exist and
// differ; the store itself trusts these inputs.
func (s *MessageService) Create(ctx context.Context, senderID string, req models.CreateMessageRequest) (*models.MessageResponse, error) {
	if senderID == req.RecipientID {
		return nil, apperr.New(apperr.Validation, "cannot send this message")
	}

	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	sender, err := unit.Members().GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	recipient, err := unit.Members().GetByID(ctx, req.RecipientID)
	if err != nil {
		return nil, err
	}
	if sender == nil || recipient == nil {
		return nil, apperr.New(apperr.Validation, "cannot send this message")
	}

	message := &models.Message{
		ID:          uuid.NewString(),
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     req.Content,
	}
	if err := unit.Messages().Create(ctx, message); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "failed to send message", err)
	}

	if err := unit.Complete(ctx); err != nil {
		return nil, err
	}

	s.publish(kafka.EventMessageCreated, senderID, req.RecipientID, message.ID)

	response := message.ToResponse()
	return &response, nil
}

// GetThread returns the full conversation between the caller and the
// other member, oldest first, minus messages the caller has hidden.
func (s *MessageService) GetThread(ctx context.Context, currentID, otherID string) ([]models.MessageResponse, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	return unit.Messages().GetThread(ctx, currentID, otherID)
}

// GetForMember returns one container page for the caller.
func (s *MessageService) GetForMember(ctx context.Context, params models.MessageParams) (*pagination.Result[models.MessageResponse], error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	return unit.Messages().GetForMember(ctx, params)
}

// Delete hides the caller's side of the message, and purges the row when
// both sides are hidden. The flag update and the purge commit together.
func (s *MessageService) Delete(ctx context.Context, callerID, messageID string) error {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return err
	}
	defer unit.Rollback()

	message, err := unit.Messages().GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if message == nil {
		return apperr.New(apperr.NotFound, "message not found")
	}

	if _, ok := message.HideFor(callerID); !ok {
		return apperr.New(apperr.Authorization, "you cannot delete this message")
	}

	if err := unit.Messages().Hide(ctx, message, callerID); err != nil {
		return apperr.Wrap(apperr.Persistence, "problem deleting the message", err)
	}

	// The other side may have deleted concurrently since the read above,
	// so the purge is decided against the stored flags, not the snapshot.
	if _, err := unit.Messages().PurgeIfHiddenForBoth(ctx, message.ID); err != nil {
		return apperr.Wrap(apperr.Persistence, "problem deleting the message", err)
	}

	if err := unit.Complete(ctx); err != nil {
		return err
	}

	other := message.RecipientID
	if callerID == message.RecipientID {
		other = message.SenderID
	}
	s.publish(kafka.EventMessageDeleted, callerID, other, message.ID)
	return nil
}

func (s *MessageService) publish(eventType, actorID, subjectID, messageID string) {
	err := s.events.Publish(kafka.InteractionEvent{
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		ResourceID: messageID,
	})
	if err != nil {
		slog.Warn("failed to publish message event", "error", err)
	}
}
