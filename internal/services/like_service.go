package services

import (
	"context"
	"log/slog"

	"match-service/internal/adapters/kafka"
	"match-service/internal/models"
	"match-service/internal/pagination"
	"match-service/internal/uow"
	"match-service/pkg/apperr"
)

// LikeService owns the like-toggle semantics. Toggle is the only way an
// edge is ever created or removed.
type LikeService struct {
	uowFactory uow.Factory
	events     kafka.Publisher
}

func NewLikeService(uowFactory uow.Factory, events kafka.Publisher) *LikeService {
	return &LikeService{uowFactory: uowFactory, events: events}
}

// Toggle creates the edge source->target when absent and removes it when
// present. liked reports whether the edge exists after the commit.
func (s *LikeService) Toggle(ctx context.Context, sourceID, targetID string) (liked bool, err error) {
	if sourceID == targetID {
		return false, apperr.New(apperr.Validation, "you cannot like yourself")
	}

	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return false, err
	}
	defer unit.Rollback()

	liked, err = unit.Likes().Toggle(ctx, sourceID, targetID)
	if err != nil {
		return false, apperr.Wrap(apperr.Persistence, "failed to update like", err)
	}

	if err := unit.Complete(ctx); err != nil {
		return false, err
	}

	s.publishToggled(sourceID, targetID, liked)
	return liked, nil
}

// GetLikedIDs returns the ids of every member the caller likes.
func (s *LikeService) GetLikedIDs(ctx context.Context, memberID string) ([]string, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	return unit.Likes().GetLikedIDs(ctx, memberID)
}

// GetMemberLikes returns one page of members on the requested side of
// the caller's like edges.
func (s *LikeService) GetMemberLikes(ctx context.Context, params models.LikesParams) (*pagination.Result[models.LikedMemberResponse], error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	return unit.Likes().GetMemberLikes(ctx, params)
}

func (s *LikeService) publishToggled(sourceID, targetID string, liked bool) {
	err := s.events.Publish(kafka.InteractionEvent{
		Type:      kafka.EventLikeToggled,
		ActorID:   sourceID,
		SubjectID: targetID,
		Liked:     &liked,
	})
	if err != nil {
		slog.Warn("failed to publish like event", "error", err)
	}
}
