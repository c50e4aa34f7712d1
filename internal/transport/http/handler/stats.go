package handler

import (
	"github.com/gin-gonic/gin"

	"pfas-demo/internal/app"
	"pfas-demo/internal/transport/http/response"
)

type StatsHandler struct {
	statsService *app.StatsService
}

func NewStatsHandler(statsService *app.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) Summary(c *gin.Context) {
	stats, err := h.statsService.Summary()
	if err != nil {
		writeError(c, err, "load stats failed")
		return
	}
	response.OK(c, stats)
}
