package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"match-service/internal/api/middleware"
	"match-service/internal/models"
	"match-service/internal/services"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// GetMembers godoc
// @Summary List members
// @Description Paginated member listing, excluding the caller
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} pagination.Result[models.MemberResponse]
// @Failure 400 {object} models.ErrorResponse "Invalid pagination input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /members [get]
func (h *MemberHandler) GetMembers(c *gin.Context) {
	var params models.MemberParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid query parameters",
			Details: err.Error(),
		})
		return
	}
	// Absent means first page; an explicit invalid value is rejected
	// downstream.
	if c.Query("pageNumber") == "" {
		params.PageNumber = 1
	}
	params.CurrentMemberID = middleware.MemberID(c)

	result, err := h.memberService.GetMembers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to get members")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMember godoc
// @Summary Get one member profile
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member id"
// @Success 200 {object} models.MemberResponse
// @Failure 404 {object} models.ErrorResponse "Unknown member"
// @Router /members/{id} [get]
func (h *MemberHandler) GetMember(c *gin.Context) {
	member, err := h.memberService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get member")
		return
	}

	c.JSON(http.StatusOK, member)
}

// UpdateMember godoc
// @Summary Update the caller's profile
// @Description Only fields present in the body change
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.MemberUpdateRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} models.ErrorResponse "Invalid input or update failure"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /members [put]
func (h *MemberHandler) UpdateMember(c *gin.Context) {
	var req models.MemberUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request",
			Details: err.Error(),
		})
		return
	}

	if err := h.memberService.Update(c.Request.Context(), middleware.MemberID(c), req); err != nil {
		respondError(c, err, "failed to update member")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMemberPhotos godoc
// @Summary List a member's photos
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member id"
// @Success 200 {array} models.Photo
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /members/{id}/photos [get]
func (h *MemberHandler) GetMemberPhotos(c *gin.Context) {
	photos, err := h.memberService.GetPhotos(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "failed to get photos")
		return
	}

	c.JSON(http.StatusOK, photos)
}

// AddPhoto godoc
// @Summary Upload a photo for the caller
// @Tags members
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image file"
// @Success 201 {object} models.Photo
// @Failure 400 {object} models.ErrorResponse "Upload or commit failure"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /members/photos [post]
func (h *MemberHandler) AddPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "file is required",
			Details: err.Error(),
		})
		return
	}

	photo, err := h.memberService.AddPhoto(c.Request.Context(), middleware.MemberID(c), file)
	if err != nil {
		respondError(c, err, "problem adding photo")
		return
	}

	c.JSON(http.StatusCreated, photo)
}

// SetMainPhoto godoc
// @Summary Make one of the caller's photos their main image
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param photoId path int true "Photo id"
// @Success 204
// @Failure 400 {object} models.ErrorResponse "Photo unknown, not owned, or already main"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /members/photos/{photoId}/main [put]
func (h *MemberHandler) SetMainPhoto(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid photo id",
		})
		return
	}

	if err := h.memberService.SetMainPhoto(c.Request.Context(), middleware.MemberID(c), uint(photoID)); err != nil {
		respondError(c, err, "problem setting main photo")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeletePhoto godoc
// @Summary Delete one of the caller's photos
// @Description The main photo cannot be deleted
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param photoId path int true "Photo id"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.ErrorResponse "Photo unknown, not owned, or main"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /members/photos/{photoId} [delete]
func (h *MemberHandler) DeletePhoto(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("photoId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid photo id",
		})
		return
	}

	if err := h.memberService.DeletePhoto(c.Request.Context(), middleware.MemberID(c), uint(photoID)); err != nil {
		respondError(c, err, "problem deleting photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
