package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"match-service/internal/models"
	"match-service/internal/pagination"
)

// LikesRepository is the store for directed like edges between members.
// Toggle is the only mutating entry point; the raw insert and delete
// primitives are private to it so callers can never create duplicate or
// orphaned edges.
type LikesRepository interface {
	// GetMemberLike returns the edge for the ordered pair, or nil when
	// no such edge exists.
	GetMemberLike(ctx context.Context, sourceID, targetID string) (*models.MemberLike, error)
	// Toggle creates the edge when absent and removes it when present.
	// liked reports whether the edge exists after the call. A racing
	// duplicate insert is treated as "edge already existed", not an
	// error.
	Toggle(ctx context.Context, sourceID, targetID string) (liked bool, err error)
	// GetLikedIDs returns the ids of every member the given member
	// currently likes.
	GetLikedIDs(ctx context.Context, memberID string) ([]string, error)
	// GetMemberLikes returns the members on the other end of the
	// caller's like edges, each annotated with mutual-like status.
	GetMemberLikes(ctx context.Context, params models.LikesParams) (*pagination.Result[models.LikedMemberResponse], error)
}

type likesRepository struct {
	db *gorm.DB
}

func NewLikesRepository(db *gorm.DB) LikesRepository {
	return &likesRepository{db: db}
}

func (r *likesRepository) GetMemberLike(ctx context.Context, sourceID, targetID string) (*models.MemberLike, error) {
	var like models.MemberLike
	err := r.db.WithContext(ctx).
		Where("source_member_id = ? AND target_member_id = ?", sourceID, targetID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likesRepository) Toggle(ctx context.Context, sourceID, targetID string) (bool, error) {
	existing, err := r.GetMemberLike(ctx, sourceID, targetID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, r.remove(ctx, existing)
	}

	err = r.add(ctx, &models.MemberLike{
		SourceMemberID: sourceID,
		TargetMemberID: targetID,
	})
	// A concurrent toggle may have inserted the edge between our read
	// and our write. The composite primary key rejects the duplicate;
	// the edge exists either way, so report liked.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *likesRepository) add(ctx context.Context, like *models.MemberLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likesRepository) remove(ctx context.Context, like *models.MemberLike) error {
	return r.db.WithContext(ctx).
		Where("source_member_id = ? AND target_member_id = ?", like.SourceMemberID, like.TargetMemberID).
		Delete(&models.MemberLike{}).Error
}

func (r *likesRepository) GetLikedIDs(ctx context.Context, memberID string) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&models.MemberLike{}).
		Where("source_member_id = ?", memberID).
		Pluck("target_member_id", &ids).Error
	return ids, err
}

func (r *likesRepository) GetMemberLikes(ctx context.Context, params models.LikesParams) (*pagination.Result[models.LikedMemberResponse], error) {
	query := r.db.WithContext(ctx).Table("member_likes")

	switch params.Direction {
	case models.LikesDirectionLikedBy:
		// Members who like the caller; mutual = the caller likes them back.
		query = query.
			Joins("JOIN members ON members.id = member_likes.source_member_id").
			Where("member_likes.target_member_id = ?", params.MemberID).
			Select(`members.id, members.display_name, members.city, members.country,
				members.image_url, member_likes.created_at AS liked_at,
				EXISTS(
					SELECT 1 FROM member_likes ml2
					WHERE ml2.source_member_id = ? AND ml2.target_member_id = members.id
				) AS mutual`, params.MemberID)
	default:
		// Members the caller likes; mutual = they like the caller back.
		query = query.
			Joins("JOIN members ON members.id = member_likes.target_member_id").
			Where("member_likes.source_member_id = ?", params.MemberID).
			Select(`members.id, members.display_name, members.city, members.country,
				members.image_url, member_likes.created_at AS liked_at,
				EXISTS(
					SELECT 1 FROM member_likes ml2
					WHERE ml2.source_member_id = members.id AND ml2.target_member_id = ?
				) AS mutual`, params.MemberID)
	}

	if params.SortBy == "name" {
		query = query.Order("members.display_name ASC, members.id ASC")
	} else {
		// Most recent edge first; member id breaks ties for determinism.
		query = query.Order("member_likes.created_at DESC, members.id ASC")
	}

	return pagination.Paginate[models.LikedMemberResponse](query, params.PageNumber, params.PageSize)
}
