package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/momoplay/rank-server/internal/apierr"
	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/repo"
	"go.uber.org/zap"
)

// defaultNickname is served when a member has no stored nickname (or the
// lookup fails). Display-only, never persisted.
const defaultNickname = "momo"

// backfillTimeout bounds the detached index repair after a MySQL fallback.
const backfillTimeout = 3 * time.Second

// -----------------------------------------------------------------------------
// RankService
// -----------------------------------------------------------------------------
//
// Runtime model
//   • MySQL is the authoritative score store; Redis is the read index.
//   • Writes land in MySQL first, then in the index. A write that fails in
//     Redis after the MySQL upsert leaves the row durable and the index one
//     submission behind; the next read of that member repairs it.
//   • Reads prefer the index and fall back to MySQL on a miss, backfilling
//     the index out of band.
//
// Scoring
//   • Members are ordered by encoded score: the integer part is the raw
//     score, the fraction decays with submission time so that of two equal
//     scores the earlier submission ranks higher.

// RankService answers score submissions and ranking queries.
type RankService struct {
	log  *zap.Logger
	repo *repo.Repository

	// coalesces identical top-N fan-ins during traffic spikes
	sg singleflight.Group
}

// NewRankService wires the dual-store repository.
func NewRankService(log *zap.Logger, r *repo.Repository) *RankService {
	return &RankService{
		log:  log.Named("rank_service"),
		repo: r,
	}
}

// SubmitScore records one submission: durable row first, then the sorted
// index and the nickname hash.
func (s *RankService) SubmitScore(ctx context.Context, appid, rankKey string, user rank.UserScore) error {
	if err := s.repo.Scores.UpsertScore(ctx, appid, rankKey, user); err != nil {
		s.log.Error("upsert score",
			zap.String("appid", appid), zap.String("rank_key", rankKey),
			zap.String("openid", user.Openid), zap.Error(err))
		return fmt.Errorf("upsert score: %w", err)
	}

	encoded := rank.EncodeScore(user.Score, time.Now())
	if err := s.repo.Index.AddScore(ctx, appid, rankKey, user.Openid, encoded); err != nil {
		s.log.Error("index score",
			zap.String("appid", appid), zap.String("rank_key", rankKey),
			zap.String("openid", user.Openid), zap.Error(err))
		return fmt.Errorf("index score: %w", err)
	}

	if err := s.repo.Index.SetNickname(ctx, appid, user.Openid, user.NickName); err != nil {
		s.log.Error("store nickname",
			zap.String("appid", appid), zap.String("openid", user.Openid), zap.Error(err))
		return fmt.Errorf("store nickname: %w", err)
	}

	return nil
}

// UserScore returns the member's raw score. Index first; on a miss the
// authoritative row is consulted and, when present, re-indexed out of band.
func (s *RankService) UserScore(ctx context.Context, appid, rankKey, openid string) (int64, error) {
	score, ok, err := s.repo.Index.Score(ctx, appid, rankKey, openid)
	if err != nil {
		return 0, fmt.Errorf("index score lookup: %w", err)
	}
	if ok {
		return score, nil
	}

	user, err := s.repo.Scores.UserScore(ctx, appid, rankKey, openid)
	if err != nil {
		if errors.Is(err, repo.ErrScoreNotFound) {
			return 0, apierr.SomethingWentWrong(errors.New("openid is not exist"))
		}
		return 0, fmt.Errorf("score lookup: %w", err)
	}

	s.backfillIndex(appid, rankKey, user)
	return user.Score, nil
}

// backfillIndex repairs a missing index entry after a MySQL fallback.
// Detached from the request: the caller already has its answer.
func (s *RankService) backfillIndex(appid, rankKey string, user rank.UserScore) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), backfillTimeout)
		defer cancel()

		encoded := rank.EncodeScore(user.Score, time.Now())
		if err := s.repo.Index.AddScore(ctx, appid, rankKey, user.Openid, encoded); err != nil {
			s.log.Warn("index backfill",
				zap.String("appid", appid), zap.String("rank_key", rankKey),
				zap.String("openid", user.Openid), zap.Error(err))
		}
	}()
}

// UserRank returns the member's 1-based position in the board, 0 when the
// member is not indexed.
func (s *RankService) UserRank(ctx context.Context, appid, rankKey, openid string) (int64, error) {
	ranking, err := s.repo.Index.Rank(ctx, appid, rankKey, openid)
	if err != nil {
		return 0, fmt.Errorf("rank lookup: %w", err)
	}
	return ranking, nil
}

// TopN returns the best n members, positions 1..n. Concurrent identical
// queries share one Redis round trip.
func (s *RankService) TopN(ctx context.Context, appid, rankKey string, n int64) ([]rank.RankedUser, error) {
	key := fmt.Sprintf("%s:%s:%d", appid, rankKey, n)
	v, err, _ := s.sg.Do(key, func() (any, error) {
		return s.topN(ctx, appid, rankKey, n)
	})
	if err != nil {
		return nil, err
	}
	return v.([]rank.RankedUser), nil
}

func (s *RankService) topN(ctx context.Context, appid, rankKey string, n int64) ([]rank.RankedUser, error) {
	entries, err := s.repo.Index.Top(ctx, appid, rankKey, n)
	if err != nil {
		return nil, fmt.Errorf("top query: %w", err)
	}

	users := make([]rank.RankedUser, 0, len(entries))
	for i, e := range entries {
		nick, err := s.repo.Index.Nickname(ctx, appid, e.Openid)
		if err != nil {
			if !errors.Is(err, repo.ErrNicknameNotFound) {
				s.log.Warn("nickname lookup",
					zap.String("appid", appid), zap.String("openid", e.Openid), zap.Error(err))
			}
			nick = defaultNickname
		}
		users = append(users, rank.RankedUser{
			Openid:   e.Openid,
			NickName: nick,
			Score:    rank.DecodeScore(e.Encoded),
			Ranking:  int64(i + 1),
		})
	}
	return users, nil
}
