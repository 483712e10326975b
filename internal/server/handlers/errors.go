package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/fleetstock/internal/auth"
	"github.com/mamadbah2/fleetstock/internal/domain/models"
	"github.com/mamadbah2/fleetstock/internal/service/users"
	"github.com/mamadbah2/fleetstock/internal/stock"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details interface{}       `json:"details,omitempty"`
}

// statusFor maps domain and service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, stock.ErrIncompleteChecklist):
		return http.StatusUnprocessableEntity
	case errors.Is(err, stock.ErrInvalidRequest),
		errors.Is(err, stock.ErrInvalidQuantity),
		errors.Is(err, users.ErrInvalidUser):
		return http.StatusBadRequest
	case errors.Is(err, stock.ErrNotFound), errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, stock.ErrInsufficientStock),
		errors.Is(err, users.ErrUsernameTaken),
		errors.Is(err, users.ErrLastAdmin):
		return http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status := statusFor(err)
	body := errorResponse{Error: err.Error()}

	var shortage *stock.ShortageError
	var checklist *stock.ChecklistError
	switch {
	case errors.As(err, &shortage):
		body.Details = gin.H{"itemId": shortage.ItemID, "requested": shortage.Requested, "available": shortage.Available}
	case errors.As(err, &checklist):
		body.Details = gin.H{"missing": checklist.Missing, "duplicates": checklist.Duplicates, "unknown": checklist.Unknown}
	}

	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		body.Error = "internal error"
	}

	c.AbortWithStatusJSON(status, body)
}

func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{
		Error:  "invalid request body",
		Fields: models.ValidationFields(err),
	})
}
