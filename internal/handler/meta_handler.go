package handler

import (
	"net/http"

	"crm/internal/model"

	"github.com/gin-gonic/gin"
)

// Option is one selectable enum value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func (h *MetaHandler) RegisterRoutes(router *gin.RouterGroup) {
	meta := router.Group("/meta")
	{
		meta.GET("/customer-types", h.CustomerTypes)
		meta.GET("/activity-types", h.ActivityTypes)
	}
}

// CustomerTypes lists customer types with labels
// @Summary      Customer type options
// @Tags         meta
// @Produce      json
// @Success      200  {array}  handler.Option
// @Router       /api/meta/customer-types [get]
func (h *MetaHandler) CustomerTypes(c *gin.Context) {
	types := model.CustomerTypes()
	options := make([]Option, 0, len(types))
	for _, t := range types {
		options = append(options, Option{Value: string(t), Label: t.Label()})
	}
	c.JSON(http.StatusOK, options)
}

// ActivityTypes lists activity types with labels
// @Summary      Activity type options
// @Tags         meta
// @Produce      json
// @Success      200  {array}  handler.Option
// @Router       /api/meta/activity-types [get]
func (h *MetaHandler) ActivityTypes(c *gin.Context) {
	types := model.ActivityTypes()
	options := make([]Option, 0, len(types))
	for _, t := range types {
		options = append(options, Option{Value: string(t), Label: t.Label()})
	}
	c.JSON(http.StatusOK, options)
}
