package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/apierr"
	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/registry"
	"github.com/momoplay/rank-server/internal/repo"
	"github.com/momoplay/rank-server/internal/scheduler"
)

// resetTimeout bounds one cron-driven board wipe across both stores.
const resetTimeout = 30 * time.Second

// -----------------------------------------------------------------------------
// ConfigService
// -----------------------------------------------------------------------------
//
// Runtime model
//   • The registry is the live picture of configured boards; MySQL is the
//     durable one. Mutations land in MySQL first, then in the registry.
//   • On the master a cron job per board (when configured) wipes the board
//     on schedule. Replicas never run the scheduler and never mutate.
//
// Mutation semantics
//   • Add: validate → insert durable (config row + board table, one tx) →
//     schedule reset job → publish to registry. A durable duplicate key
//     means the board already exists; nothing is published.
//   • Delete: registry removal is the point of no return. The durable row,
//     the stored rows, the index key, and the cron job are torn down after
//     it; their failures are logged, never unwound. A reset job racing the
//     teardown clears already-empty state, which is harmless.

// ConfigService owns the leaderboard configuration lifecycle.
type ConfigService struct {
	log   *zap.Logger
	repo  *repo.Repository
	reg   *registry.Registry
	sched *scheduler.Scheduler // nil on replicas
}

// NewConfigService wires the configuration service. Pass a nil scheduler
// on replica nodes; they mirror the master's registry and never reset.
func NewConfigService(log *zap.Logger, r *repo.Repository, reg *registry.Registry, sched *scheduler.Scheduler) *ConfigService {
	return &ConfigService{
		log:   log.Named("config_service"),
		repo:  r,
		reg:   reg,
		sched: sched,
	}
}

// Bootstrap loads the durable config list into the registry and, on the
// master, arms one reset job per cron-bearing board and starts the
// scheduler. With syncRedis set it first rebuilds the whole read index
// from MySQL; any rehydration failure is fatal so the process never
// serves a half-built index.
func (s *ConfigService) Bootstrap(ctx context.Context, syncRedis bool) error {
	configs, err := s.repo.Scores.Configs(ctx)
	if err != nil {
		return fmt.Errorf("load configs: %w", err)
	}
	s.reg.Bootstrap(configs)
	s.log.Info("registry loaded", zap.Int("boards", len(configs)))

	if syncRedis {
		for _, cfg := range configs {
			if err := s.repo.Rehydrate(ctx, cfg.Appid, cfg.RankKey); err != nil {
				return fmt.Errorf("sync redis %s/%s: %w", cfg.Appid, cfg.RankKey, err)
			}
		}
	}

	if s.sched == nil {
		return nil
	}

	for _, cfg := range configs {
		if cfg.CronExpression == "" {
			continue
		}
		id, err := s.sched.Schedule(cfg.CronExpression, s.resetJob(cfg.Appid, cfg.RankKey))
		if err != nil {
			// A row that no longer parses must not take the node down;
			// the board simply stops resetting until an operator fixes it.
			s.log.Error("reset job not scheduled",
				zap.String("appid", cfg.Appid), zap.String("rank_key", cfg.RankKey),
				zap.String("cron", cfg.CronExpression), zap.Error(err))
			continue
		}
		s.reg.SetJobID(cfg.Appid, cfg.RankKey, id)
	}
	s.sched.Start()
	s.log.Info("reset scheduler started")
	return nil
}

// AddConfig defines a new leaderboard. Master only.
func (s *ConfigService) AddConfig(ctx context.Context, cfg rank.Config) error {
	if cfg.CronExpression != "" {
		if err := scheduler.Validate(cfg.CronExpression); err != nil {
			return apierr.CommonRequest(fmt.Sprintf("invalid cron expression %q", cfg.CronExpression))
		}
	}
	if secret, ok := s.reg.Secret(cfg.Appid); ok && secret != cfg.AppSecret {
		return apierr.CommonRequest("app_secret does not match the appid's registered secret")
	}
	if s.reg.Contains(cfg.Appid, cfg.RankKey) {
		return apierr.DuplicateEntry(repo.ErrDuplicateConfig)
	}

	if err := s.repo.Scores.InsertConfig(ctx, cfg); err != nil {
		if errors.Is(err, repo.ErrDuplicateConfig) {
			return apierr.DuplicateEntry(err)
		}
		s.log.Error("config insert failed",
			zap.String("appid", cfg.Appid), zap.String("rank_key", cfg.RankKey), zap.Error(err))
		return apierr.SomethingWentWrong(errors.New("failed to create rank config"))
	}

	var jobID int
	if cfg.CronExpression != "" && s.sched != nil {
		id, err := s.sched.Schedule(cfg.CronExpression, s.resetJob(cfg.Appid, cfg.RankKey))
		if err != nil {
			// Validated above; a parse failure here means the two parsers
			// disagree. The board exists durably, it just won't reset.
			s.log.Error("reset job not scheduled",
				zap.String("appid", cfg.Appid), zap.String("rank_key", cfg.RankKey), zap.Error(err))
		}
		jobID = id
	}

	s.reg.Add(cfg, jobID)
	s.log.Info("board added",
		zap.String("appid", cfg.Appid), zap.String("rank_key", cfg.RankKey),
		zap.String("cron", cfg.CronExpression))
	return nil
}

// DeleteConfig tears a leaderboard down. Master only.
func (s *ConfigService) DeleteConfig(ctx context.Context, appid, rankKey string) error {
	entry, ok := s.reg.Remove(appid, rankKey)
	if !ok {
		return apierr.CommonRequest(fmt.Sprintf("rank config %s/%s not found", appid, rankKey))
	}

	// Past this point the board is gone as far as clients are concerned.
	// Teardown failures leave garbage, not ghosts.
	if err := s.repo.Scores.DeleteConfig(ctx, appid, rankKey); err != nil {
		s.log.Error("config row delete failed",
			zap.String("appid", appid), zap.String("rank_key", rankKey), zap.Error(err))
	}
	if err := s.repo.Clear(ctx, appid, rankKey); err != nil {
		s.log.Error("board purge failed",
			zap.String("appid", appid), zap.String("rank_key", rankKey), zap.Error(err))
	}
	if s.sched != nil {
		s.sched.Cancel(entry.JobID)
	}

	s.log.Info("board deleted", zap.String("appid", appid), zap.String("rank_key", rankKey))
	return nil
}

// resetJob wipes one board in both stores on its cron cadence.
func (s *ConfigService) resetJob(appid, rankKey string) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()

		if err := s.repo.Clear(ctx, appid, rankKey); err != nil {
			// Repository already logged the per-store detail.
			s.log.Error("scheduled reset incomplete",
				zap.String("appid", appid), zap.String("rank_key", rankKey), zap.Error(err))
			return
		}
		s.log.Info("board reset", zap.String("appid", appid), zap.String("rank_key", rankKey))
	}
}
