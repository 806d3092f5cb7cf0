package services

import (
	"context"
	"mime/multipart"

	"match-service/internal/models"
	"match-service/internal/pagination"
	"match-service/internal/uow"
	"match-service/pkg/apperr"
)

// PhotoStorage is the external image host. Implemented by the MinIO
// adapter; faked in tests.
type PhotoStorage interface {
	UploadImage(ctx context.Context, file *multipart.FileHeader) (url string, objectName string, err error)
	DeleteImage(ctx context.Context, objectName string) error
}

// MemberService serves member profiles and photo management.
type MemberService struct {
	uowFactory uow.Factory
	photos     PhotoStorage
}

func NewMemberService(uowFactory uow.Factory, photos PhotoStorage) *MemberService {
	return &MemberService{uowFactory: uowFactory, photos: photos}
}

func (s *MemberService) GetMembers(ctx context.Context, params models.MemberParams) (*pagination.Result[models.MemberResponse], error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	return unit.Members().GetMembers(ctx, params)
}

func (s *MemberService) GetByID(ctx context.Context, id string) (*models.MemberResponse, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	member, err := unit.Members().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.New(apperr.NotFound, "member not found")
	}

	response := member.ToResponse()
	return &response, nil
}

// Update applies the non-nil fields of req to the caller's profile.
func (s *MemberService) Update(ctx context.Context, memberID string, req models.MemberUpdateRequest) error {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return err
	}
	defer unit.Rollback()

	member, err := unit.Members().GetForUpdate(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.New(apperr.NotFound, "could not get member")
	}

	if req.DisplayName != nil {
		member.DisplayName = *req.DisplayName
	}
	if req.Description != nil {
		member.Description = *req.Description
	}
	if req.City != nil {
		member.City = *req.City
	}
	if req.Country != nil {
		member.Country = *req.Country
	}

	if err := unit.Members().Update(ctx, member); err != nil {
		return apperr.Wrap(apperr.Persistence, "failed to update member", err)
	}

	return unit.Complete(ctx)
}

func (s *MemberService) GetPhotos(ctx context.Context, memberID string) ([]models.Photo, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	return unit.Members().GetPhotos(ctx, memberID)
}

// AddPhoto uploads the file to the image host, then records the photo.
// The upload happens first: a failed commit leaves an orphaned object on
// the host, never a dangling row.
func (s *MemberService) AddPhoto(ctx context.Context, memberID string, file *multipart.FileHeader) (*models.Photo, error) {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return nil, err
	}
	defer unit.Rollback()

	member, err := unit.Members().GetForUpdate(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperr.New(apperr.NotFound, "cannot update member")
	}

	url, objectName, err := s.photos.UploadImage(ctx, file)
	if err != nil {
		return nil, apperr.Wrap(apperr.Validation, "failed to upload photo", err)
	}

	photo := &models.Photo{
		URL:      url,
		PublicID: objectName,
		MemberID: memberID,
	}
	if err := unit.Members().AddPhoto(ctx, photo); err != nil {
		return nil, apperr.Wrap(apperr.Persistence, "problem adding photo", err)
	}

	if err := unit.Complete(ctx); err != nil {
		return nil, err
	}
	return photo, nil
}

// SetMainPhoto makes one of the caller's own photos their main image.
// The current main image cannot be re-selected.
func (s *MemberService) SetMainPhoto(ctx context.Context, memberID string, photoID uint) error {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return err
	}
	defer unit.Rollback()

	member, err := unit.Members().GetForUpdate(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.New(apperr.NotFound, "cannot get member")
	}

	photo := findPhoto(member.Photos, photoID)
	if photo == nil || member.ImageURL == photo.URL {
		return apperr.New(apperr.Validation, "cannot set this as main image")
	}

	member.ImageURL = photo.URL
	if err := unit.Members().Update(ctx, member); err != nil {
		return apperr.Wrap(apperr.Persistence, "problem setting main photo", err)
	}

	return unit.Complete(ctx)
}

// DeletePhoto removes one of the caller's photos, but never the main
// one. The image host object is removed before the row.
func (s *MemberService) DeletePhoto(ctx context.Context, memberID string, photoID uint) error {
	unit, err := s.uowFactory.New(ctx)
	if err != nil {
		return err
	}
	defer unit.Rollback()

	member, err := unit.Members().GetForUpdate(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperr.New(apperr.NotFound, "cannot get member")
	}

	photo := findPhoto(member.Photos, photoID)
	if photo == nil || photo.URL == member.ImageURL {
		return apperr.New(apperr.Validation, "this photo cannot be deleted")
	}

	if photo.PublicID != "" {
		if err := s.photos.DeleteImage(ctx, photo.PublicID); err != nil {
			return apperr.Wrap(apperr.Persistence, "problem deleting photo", err)
		}
	}

	if err := unit.Members().DeletePhoto(ctx, photo); err != nil {
		return apperr.Wrap(apperr.Persistence, "problem deleting photo", err)
	}

	return unit.Complete(ctx)
}

func findPhoto(photos []models.Photo, id uint) *models.Photo {
	for i := range photos {
		if photos[i].ID == id {
			return &photos[i]
		}
	}
	return nil
}
