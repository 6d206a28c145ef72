package handler

import (
	"errors"
	"net/http"

	repo "leafloop/internal/repository/postgresql"
	service "leafloop/internal/service/postgresql"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps service errors to HTTP statuses: missing aggregates
// to 404, policy denials to 403, state conflicts and races to 409,
// validation failures to 400.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrOfferNotFound),
		errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotBookOwner),
		errors.Is(err, service.ErrNotRequester),
		errors.Is(err, service.ErrNotOfferParty),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrInactiveAccount):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrOfferState),
		errors.Is(err, repo.ErrStaleState),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNoCandidates),
		errors.Is(err, service.ErrNoCandidateChosen),
		errors.Is(err, service.ErrCandidateNotOffered),
		errors.Is(err, service.ErrCandidateNotOwned),
		errors.Is(err, service.ErrBookNotTradable),
		errors.Is(err, service.ErrOwnBook),
		errors.Is(err, service.ErrInvalidCondition):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidRefreshToken):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func currentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet("user_id").(uuid.UUID)
}

// optionalUserID is for routes that serve anonymous viewers too.
func optionalUserID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
