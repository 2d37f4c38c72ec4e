package handler

import (
	"net/http"

	"crm/internal/middleware"
	"crm/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type ActivityHandler struct {
	activityService service.ActivityService
	logger          zerolog.Logger
}

func NewActivityHandler(activityService service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{activityService: activityService, logger: logger}
}

func (h *ActivityHandler) RegisterRoutes(router *gin.RouterGroup) {
	activities := router.Group("/customers/:id/activities")
	{
		activities.GET("", h.ListActivities)
		activities.POST("", h.CreateActivity)
	}
}

// ListActivities returns the customer's timeline, newest first
// @Summary      List customer activities
// @Tags         activities
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Customer ID"
// @Success      200  {array}   service.ActivityResponse
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/customers/{id}/activities [get]
func (h *ActivityHandler) ListActivities(c *gin.Context) {
	activities, err := h.activityService.ListActivities(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to fetch activities")
		return
	}

	c.JSON(http.StatusOK, activities)
}

// CreateActivity appends an activity to the customer's timeline
// @Summary      Create activity
// @Description  createdBy defaults to the authenticated user, or "System" for anonymous requests.
// @Tags         activities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                         true  "Customer ID"
// @Param        payload  body      service.CreateActivityRequest  true  "Activity payload"
// @Success      201      {object}  service.ActivityResponse
// @Failure      400      {object}  response.ErrorBody
// @Failure      404      {object}  response.ErrorBody
// @Router       /api/customers/{id}/activities [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var req service.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	if req.CreatedBy == "" {
		req.CreatedBy = middleware.ActorFromContext(c)
	}

	activity, err := h.activityService.CreateActivity(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, h.logger, err, "Failed to create activity")
		return
	}

	c.JSON(http.StatusCreated, activity)
}
