// Package repo composes the two leaderboard backends behind one surface:
// MySQL as the authoritative score store and Redis as the read index.
// Callers never learn table or key names; naming lives in the domain
// package and the stores.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/domain/rank"
)

var (
	// ErrScoreNotFound reports a missing row in the durable store.
	ErrScoreNotFound = errors.New("score not found")

	// ErrNicknameNotFound reports a missing field in the user-info hash.
	ErrNicknameNotFound = errors.New("nickname not found")

	// ErrDuplicateConfig reports a unique-key collision on the config
	// table: the (appid, rank_key) pair is already defined.
	ErrDuplicateConfig = errors.New("config already exists")
)

// rehydratePageSize is how many durable rows one rehydration read pulls.
const rehydratePageSize = 100

// DurableStore is the authoritative MySQL surface.
type DurableStore interface {
	UpsertScore(ctx context.Context, appid, rankKey string, row rank.UserScore) error
	UserScore(ctx context.Context, appid, rankKey, openid string) (rank.UserScore, error)
	PageScores(ctx context.Context, appid, rankKey string, offset, limit int64) ([]rank.UserScore, error)
	ClearScores(ctx context.Context, appid, rankKey string) error
	Configs(ctx context.Context) ([]rank.Config, error)
	InsertConfig(ctx context.Context, cfg rank.Config) error
	DeleteConfig(ctx context.Context, appid, rankKey string) error
}

// IndexStore is the Redis read-index surface.
type IndexStore interface {
	AddScore(ctx context.Context, appid, rankKey, openid string, encoded float64) error
	Score(ctx context.Context, appid, rankKey, openid string) (int64, bool, error)
	Rank(ctx context.Context, appid, rankKey, openid string) (int64, error)
	Top(ctx context.Context, appid, rankKey string, n int64) ([]rank.IndexEntry, error)
	SetNickname(ctx context.Context, appid, openid, nickName string) error
	Nickname(ctx context.Context, appid, openid string) (string, error)
	Clear(ctx context.Context, appid, rankKey string) error
}

// Repository pairs the durable store with the index. Writes go durable
// first; the index is a cache the service layer may rebuild at any time.
type Repository struct {
	log    *zap.Logger
	Scores DurableStore
	Index  IndexStore
}

// New wires the dual-store repository.
func New(log *zap.Logger, scores DurableStore, index IndexStore) *Repository {
	return &Repository{log: log.Named("rank_repo"), Scores: scores, Index: index}
}

// Clear wipes one board in both stores. The stores are cleared
// independently: a failure in one never skips the other, and both
// failures are reported together.
func (r *Repository) Clear(ctx context.Context, appid, rankKey string) error {
	var durableErr, indexErr error

	if err := r.Scores.ClearScores(ctx, appid, rankKey); err != nil {
		durableErr = fmt.Errorf("clear durable: %w", err)
		r.log.Error("durable clear failed",
			zap.String("appid", appid), zap.String("rank_key", rankKey), zap.Error(err))
	}
	if err := r.Index.Clear(ctx, appid, rankKey); err != nil {
		indexErr = fmt.Errorf("clear index: %w", err)
		r.log.Error("index clear failed",
			zap.String("appid", appid), zap.String("rank_key", rankKey), zap.Error(err))
	}

	return errors.Join(durableErr, indexErr)
}

// FillIndex writes one durable row into the index without touching the
// durable store: sorted-set entry plus nickname. Used by startup
// rehydration and by the read path's backfill.
func (r *Repository) FillIndex(ctx context.Context, appid, rankKey string, row rank.UserScore) error {
	encoded := rank.EncodeScore(row.Score, time.Now())
	if err := r.Index.AddScore(ctx, appid, rankKey, row.Openid, encoded); err != nil {
		return fmt.Errorf("fill index score: %w", err)
	}
	if err := r.Index.SetNickname(ctx, appid, row.Openid, row.NickName); err != nil {
		return fmt.Errorf("fill index nickname: %w", err)
	}
	return nil
}

// Rehydrate pages through the board's durable rows and re-indexes every
// one of them. Any failure aborts; the caller decides whether that is
// fatal (it is at startup).
func (r *Repository) Rehydrate(ctx context.Context, appid, rankKey string) error {
	var offset int64
	for {
		page, err := r.Scores.PageScores(ctx, appid, rankKey, offset, rehydratePageSize)
		if err != nil {
			return fmt.Errorf("rehydrate page at %d: %w", offset, err)
		}
		for _, row := range page {
			if err := r.FillIndex(ctx, appid, rankKey, row); err != nil {
				return fmt.Errorf("rehydrate %s: %w", row.Openid, err)
			}
		}
		if int64(len(page)) < rehydratePageSize {
			r.log.Info("index rehydrated",
				zap.String("appid", appid), zap.String("rank_key", rankKey),
				zap.Int64("rows", offset+int64(len(page))))
			return nil
		}
		offset += rehydratePageSize
	}
}
