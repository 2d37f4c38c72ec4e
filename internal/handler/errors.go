package handler

import (
	"errors"
	"net/http"

	"crm/internal/service"
	"crm/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// writeServiceError maps service errors onto status codes. Anything unclassified
// is logged and answered with the generic fallback message.
func writeServiceError(c *gin.Context, logger zerolog.Logger, err error, fallback string) {
	var dupErr *service.DuplicateError
	switch {
	case errors.As(err, &dupErr):
		c.JSON(http.StatusConflict, response.Duplicate("Possible duplicate found", dupErr.Existing))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.Error(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.Error(err.Error()))
	default:
		_ = c.Error(err)
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, response.Error(fallback))
	}
}

func writeBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(bindingMessage(err)))
}
