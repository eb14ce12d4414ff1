package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/repo"
)

// RankIndex implements repo.IndexStore on a single Redis instance.
type RankIndex struct {
	log *zap.Logger
	rdb *redis.Client
}

// NewRankIndex builds the index store.
func NewRankIndex(log *zap.Logger, rdb *redis.Client) *RankIndex {
	return &RankIndex{log: log.Named("rankindex"), rdb: rdb}
}

// AddScore upserts the member's encoded score in the board's sorted set.
func (x *RankIndex) AddScore(ctx context.Context, appid, rankKey, openid string, encoded float64) error {
	key := rank.IndexKey(appid, rankKey)
	if err := x.rdb.ZAdd(ctx, key, redis.Z{Score: encoded, Member: openid}).Err(); err != nil {
		return fmt.Errorf("zadd %s: %w", key, err)
	}
	return nil
}

// Score returns the member's decoded raw score; ok is false when the
// member is not indexed.
func (x *RankIndex) Score(ctx context.Context, appid, rankKey, openid string) (int64, bool, error) {
	key := rank.IndexKey(appid, rankKey)
	encoded, err := x.rdb.ZScore(ctx, key, openid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("zscore %s: %w", key, err)
	}
	return rank.DecodeScore(encoded), true, nil
}

// Rank returns the member's 1-based position in descending score order,
// or 0 when the member is not on the board.
func (x *RankIndex) Rank(ctx context.Context, appid, rankKey, openid string) (int64, error) {
	key := rank.IndexKey(appid, rankKey)
	pos, err := x.rdb.ZRevRank(ctx, key, openid).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("zrevrank %s: %w", key, err)
	}
	return pos + 1, nil
}

// Top returns the best n members with their encoded scores.
func (x *RankIndex) Top(ctx context.Context, appid, rankKey string, n int64) ([]rank.IndexEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	key := rank.IndexKey(appid, rankKey)
	zs, err := x.rdb.ZRevRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %s: %w", key, err)
	}

	entries := make([]rank.IndexEntry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("zrevrange %s: unexpected member type %T", key, z.Member)
		}
		entries = append(entries, rank.IndexEntry{Openid: member, Encoded: z.Score})
	}
	return entries, nil
}

// SetNickname records the member's display name in the tenant hash.
func (x *RankIndex) SetNickname(ctx context.Context, appid, openid, nickName string) error {
	key := rank.UserInfoKey(appid)
	if err := x.rdb.HSet(ctx, key, openid, nickName).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Nickname reads the member's display name from the tenant hash.
func (x *RankIndex) Nickname(ctx context.Context, appid, openid string) (string, error) {
	key := rank.UserInfoKey(appid)
	nick, err := x.rdb.HGet(ctx, key, openid).Result()
	if errors.Is(err, redis.Nil) {
		return "", repo.ErrNicknameNotFound
	}
	if err != nil {
		return "", fmt.Errorf("hget %s: %w", key, err)
	}
	return nick, nil
}

// Clear drops the board's sorted set. The tenant nickname hash survives
// resets on purpose: identities outlive seasons.
func (x *RankIndex) Clear(ctx context.Context, appid, rankKey string) error {
	key := rank.IndexKey(appid, rankKey)
	if err := x.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
