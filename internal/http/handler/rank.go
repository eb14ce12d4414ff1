package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/apierr"
	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/http/dto"
	"github.com/momoplay/rank-server/internal/service"
)

// RankHandler serves the signed scoring endpoints:
//   - POST /api/rank/update_score      → submit one score
//   - POST /api/rank/get_user_rank     → one member's position
//   - POST /api/rank/get_user_score    → one member's score
//   - POST /api/rank/get_top_user_rank → the board's best N
type RankHandler struct {
	log *zap.Logger
	svc *service.RankService
}

// NewRankHandler constructs the scoring handler.
func NewRankHandler(log *zap.Logger, svc *service.RankService) *RankHandler {
	return &RankHandler{log: log.Named("rank"), svc: svc}
}

// UpdateScore handles POST /api/rank/update_score.
func (h *RankHandler) UpdateScore(c *gin.Context) {
	var req dto.UpdateScore
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	user := rank.UserScore{Openid: req.Openid, NickName: req.NickName, Score: req.Score}
	if err := h.svc.SubmitScore(c.Request.Context(), req.Appid, req.RankKey, user); err != nil {
		fail(c, apierr.SomethingWentWrong(errors.New("failed to update score")))
		return
	}
	ok(c, nil)
}

// GetUserRank handles POST /api/rank/get_user_rank. Ranking 0 means the
// member is not on the board.
func (h *RankHandler) GetUserRank(c *gin.Context) {
	var req dto.UserQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	ranking, err := h.svc.UserRank(c.Request.Context(), req.Appid, req.RankKey, req.Openid)
	if err != nil {
		fail(c, apierr.SomethingWentWrong(errors.New("failed to get user rank")))
		return
	}
	ok(c, dto.UserRank{Ranking: ranking})
}

// GetUserScore handles POST /api/rank/get_user_score.
func (h *RankHandler) GetUserScore(c *gin.Context) {
	var req dto.UserQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	score, err := h.svc.UserScore(c.Request.Context(), req.Appid, req.RankKey, req.Openid)
	if err != nil {
		// Only deliberate API errors (unknown openid) go out verbatim;
		// store failures get a generic message.
		var apiErr *apierr.Error
		if !errors.As(err, &apiErr) {
			err = apierr.SomethingWentWrong(errors.New("failed to get user score"))
		}
		fail(c, err)
		return
	}
	ok(c, dto.UserScore{Score: score})
}

// GetTopUserRank handles POST /api/rank/get_top_user_rank.
func (h *RankHandler) GetTopUserRank(c *gin.Context) {
	var req dto.TopQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.FromBinding(err))
		return
	}

	top, err := h.svc.TopN(c.Request.Context(), req.Appid, req.RankKey, req.TopN)
	if err != nil {
		fail(c, apierr.SomethingWentWrong(errors.New("failed to get top users")))
		return
	}

	// Always a JSON array, never null.
	out := make([]dto.RankedUser, 0, len(top))
	for _, u := range top {
		out = append(out, dto.RankedUser{
			Openid:   u.Openid,
			NickName: u.NickName,
			Score:    u.Score,
			Ranking:  u.Ranking,
		})
	}
	ok(c, out)
}
