package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"match-service/internal/api/middleware"
	"match-service/internal/models"
	"match-service/internal/services"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// ToggleLike godoc
// @Summary Toggle a like on another member
// @Description Create the like edge if absent, remove it if present
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param targetMemberId path string true "Target member id"
// @Success 200 {object} map[string]bool "liked reports whether the edge now exists"
// @Failure 400 {object} models.ErrorResponse "Self-like or update failure"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /likes/{targetMemberId} [post]
func (h *LikeHandler) ToggleLike(c *gin.Context) {
	sourceID := middleware.MemberID(c)
	targetID := c.Param("targetMemberId")

	liked, err := h.likeService.Toggle(c.Request.Context(), sourceID, targetID)
	if err != nil {
		respondError(c, err, "failed to update like")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// GetLikedIDs godoc
// @Summary List ids of members the caller likes
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /likes/list [get]
func (h *LikeHandler) GetLikedIDs(c *gin.Context) {
	ids, err := h.likeService.GetLikedIDs(c.Request.Context(), middleware.MemberID(c))
	if err != nil {
		respondError(c, err, "failed to get likes")
		return
	}

	c.JSON(http.StatusOK, ids)
}

// GetMemberLikes godoc
// @Summary List members on one side of the caller's like edges
// @Description direction=liked lists members the caller likes, direction=likedBy lists members who like the caller; each entry carries mutual-like status
// @Tags likes
// @Produce json
// @Security BearerAuth
// @Param pageNumber query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 50)"
// @Param direction query string false "liked or likedBy" default(liked)
// @Param sortBy query string false "Empty for edge recency, name for display name"
// @Success 200 {object} pagination.Result[models.LikedMemberResponse]
// @Failure 400 {object} models.ErrorResponse "Invalid pagination input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /likes [get]
func (h *LikeHandler) GetMemberLikes(c *gin.Context) {
	var params models.LikesParams
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
	params.MemberID = middleware.MemberID(c)

	result, err := h.likeService.GetMemberLikes(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "failed to get likes")
		return
	}

	c.JSON(http.StatusOK, result)
}
