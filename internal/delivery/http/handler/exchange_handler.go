package handler

import (
	"net/http"

	mongorepo "leafloop/internal/repository/mongodb"
	service "leafloop/internal/service/postgresql"

	"github.com/gin-gonic/gin"
)

type ExchangeHandler struct {
	exchangeService *service.ExchangeService
}

func NewExchangeHandler(exchangeService *service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeService: exchangeService}
}

// History lists the caller's completed trades (GET /exchanges).
func (h *ExchangeHandler) History(c *gin.Context) {
	exchanges, err := h.exchangeService.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exchanges": exchanges})
}

const notificationLimit = 50

type NotificationHandler struct {
	logRepo mongorepo.LogRepository
}

func NewNotificationHandler(logRepo mongorepo.LogRepository) *NotificationHandler {
	return &NotificationHandler{logRepo: logRepo}
}

// List returns the caller's recent notifications (GET /notifications).
func (h *NotificationHandler) List(c *gin.Context) {
	notis, err := h.logRepo.ListNotifications(currentUserID(c).String(), notificationLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notis})
}
