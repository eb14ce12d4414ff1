package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/apierr"
	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/http/dto"
	"github.com/momoplay/rank-server/internal/service"
)

// ConfigHandler serves the admin surface, master only:
//   - POST   /api/rank/add_rank_config
//   - DELETE /api/rank/delete_rank_config?appid=…&rank_key=…
type ConfigHandler struct {
	log *zap.Logger
	svc *service.ConfigService
}

// NewConfigHandler constructs the admin handler.
func NewConfigHandler(log *zap.Logger, svc *service.ConfigService) *ConfigHandler {
	return &ConfigHandler{log: log.Named("config"), svc: svc}
}

// AddRankConfig handles POST /api/rank/add_rank_config.
func (h *ConfigHandler) AddRankConfig(c *gin.Context) {
	var req dto.AddRankConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	cfg := rank.Config{
		Appid:          req.Appid,
		AppSecret:      req.AppSecret,
		RankKey:        req.RankKey,
		CronExpression: req.CronExpression,
		Remark:         req.Remark,
	}
	if err := h.svc.AddConfig(c.Request.Context(), cfg); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// DeleteRankConfig handles DELETE /api/rank/delete_rank_config. Identity
// comes from query parameters, matching the admin tooling.
func (h *ConfigHandler) DeleteRankConfig(c *gin.Context) {
	appid := c.Query("appid")
	rankKey := c.Query("rank_key")
	if appid == "" || rankKey == "" {
		fail(c, apierr.CommonRequest("appid and rank_key query parameters are required"))
		return
	}

	if err := h.svc.DeleteConfig(c.Request.Context(), appid, rankKey); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// Health handles GET /api/health.
func Health(c *gin.Context) {
	c.String(http.StatusOK, "Healthy...")
}
