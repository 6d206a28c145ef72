package handler

import (
	"net/http"

	entity "leafloop/internal/domain"
	service "leafloop/internal/service/postgresql"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	offerService *service.OfferService
}

func NewOfferHandler(offerService *service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// Create opens a trade offer (POST /offers).
func (h *OfferHandler) Create(c *gin.Context) {
	var input entity.CreateOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	offer, err := h.offerService.Create(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Offer created successfully. Waiting for the owner's response.",
		"offer":   offer,
	})
}

// Incoming lists offers on the caller's books (GET /offers/incoming).
func (h *OfferHandler) Incoming(c *gin.Context) {
	offers, err := h.offerService.Incoming(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// Outgoing lists offers the caller made (GET /offers/outgoing).
func (h *OfferHandler) Outgoing(c *gin.Context) {
	offers, err := h.offerService.Outgoing(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": offers})
}

// Get serves the full offer aggregate for one of its parties (GET /offers/:id).
func (h *OfferHandler) Get(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.offerService.Get(c.Request.Context(), currentUserID(c), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": view})
}

// SelectCandidate narrows the offered books to one (POST /offers/:id/select).
func (h *OfferHandler) SelectCandidate(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input entity.SelectCandidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	view, err := h.offerService.SelectCandidate(c.Request.Context(), currentUserID(c), offerID, input.BookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": view})
}

// Reveal shares contact information (POST /offers/:id/reveal).
func (h *OfferHandler) Reveal(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.offerService.Reveal(c.Request.Context(), currentUserID(c), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": view})
}

// Reject declines the trade (POST /offers/:id/reject).
func (h *OfferHandler) Reject(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.offerService.Reject(c.Request.Context(), currentUserID(c), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": view})
}

// Cancel withdraws the trade from the requester's side (POST /offers/:id/cancel).
func (h *OfferHandler) Cancel(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.offerService.Cancel(c.Request.Context(), currentUserID(c), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": view})
}

// Complete finalizes the exchange (POST /offers/:id/complete).
func (h *OfferHandler) Complete(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.offerService.Complete(c.Request.Context(), currentUserID(c), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Exchange completed. Both books have been delisted.",
		"offer":   view,
	})
}

// Messages lists the offer conversation (GET /offers/:id/messages).
func (h *OfferHandler) Messages(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	msgs, err := h.offerService.Messages(c.Request.Context(), currentUserID(c), offerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

// PostMessage appends to the offer conversation (POST /offers/:id/messages).
func (h *OfferHandler) PostMessage(c *gin.Context) {
	offerID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input entity.PostMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "detail": err.Error()})
		return
	}

	msg, err := h.offerService.PostMessage(c.Request.Context(), currentUserID(c), offerID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
