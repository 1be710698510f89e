package handler

import (
	"net/http"

	"outreach-server/internal/apierrors"
	"outreach-server/internal/dashboard/processor"
	"outreach-server/internal/observability"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.DashboardProcessor
	logger    *observability.Logger
}

func New(processor processor.DashboardProcessor, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetDashboard handles GET /api/protected/dashboard
func (h *Handler) HandleGetDashboard(c *gin.Context) {
	dashboard, err := h.processor.GetDashboard(c.Request.Context())
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
