package handler

import (
	"net/http"

	entity "leafloop/internal/domain"
	service "leafloop/internal/service/postgresql"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Get returns the caller's own profile (GET /profile). 404 until the
// first save; profiles are created lazily.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// Upsert saves the caller's profile (PUT /profile).
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var input entity.UpsertProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	profile, err := h.profileService.Upsert(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// GetPublic returns another user's display profile (GET /profiles/:id).
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	userID, ok := parseID(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetPublic(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
