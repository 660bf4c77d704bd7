package stats

import (
	"social-backend/internal/errors"
	"social-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler 处理系统统计相关的HTTP请求
type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService}
}

// GetStats 返回系统统计信息
func (h *StatsHandler) GetStats(c *gin.Context) {
	systemStats, err := h.statsService.GetSystemStats()
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, systemStats, "")
}
