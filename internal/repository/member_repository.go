package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"match-service/internal/models"
	"match-service/internal/pagination"
)

// MemberRepository is the store for member profiles and their photos.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	// GetByID returns the member or nil when it does not exist.
	GetByID(ctx context.Context, id string) (*models.Member, error)
	// FindByEmail returns the member or nil when it does not exist.
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
	// GetForUpdate loads the member with photos for a mutating flow.
	GetForUpdate(ctx context.Context, id string) (*models.Member, error)
	// GetMembers lists members excluding the caller, newest first.
	GetMembers(ctx context.Context, params models.MemberParams) (*pagination.Result[models.MemberResponse], error)
	Update(ctx context.Context, member *models.Member) error
	GetPhotos(ctx context.Context, memberID string) ([]models.Photo, error)
	AddPhoto(ctx context.Context, photo *models.Photo) error
	DeletePhoto(ctx context.Context, photo *models.Photo) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetForUpdate(ctx context.Context, id string) (*models.Member, error) {
	var member models.Member
	err := r.db.WithContext(ctx).Preload("Photos").First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) GetMembers(ctx context.Context, params models.MemberParams) (*pagination.Result[models.MemberResponse], error) {
	query := r.db.WithContext(ctx).
		Model(&models.Member{}).
		Where("id <> ?", params.CurrentMemberID).
		Order("created_at DESC, id ASC")

	return pagination.Paginate[models.MemberResponse](query, params.PageNumber, params.PageSize)
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	// Photos are managed through AddPhoto/DeletePhoto, never saved as an
	// association side effect.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(member).Error
}

func (r *memberRepository) GetPhotos(ctx context.Context, memberID string) ([]models.Photo, error) {
	photos := make([]models.Photo, 0)
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("id ASC").
		Find(&photos).Error
	return photos, err
}

func (r *memberRepository) AddPhoto(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *memberRepository) DeletePhoto(ctx context.Context, photo *models.Photo) error {
	return r.db.WithContext(ctx).Delete(&models.Photo{}, "id = ?", photo.ID).Error
}
