package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	pb "github.com/momoplay/rank-server/api/proto"
	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/registry"
)

// pullInterval is how often a replica compares its registry version
// against the master's.
const pullInterval = 30 * time.Second

// ReplicationServer is the master-side gRPC surface replicas poll.
// It serves straight from the registry; no storage round trips.
type ReplicationServer struct {
	pb.UnimplementedConfigReplicationServer

	log *zap.Logger
	reg *registry.Registry
}

// NewReplicationServer builds the master-side replication handler.
func NewReplicationServer(log *zap.Logger, reg *registry.Registry) *ReplicationServer {
	return &ReplicationServer{log: log.Named("replication"), reg: reg}
}

// GetLastUpdateTime returns the registry's version cursor. Replicas call
// this every tick and only fetch the full snapshot on a mismatch.
func (s *ReplicationServer) GetLastUpdateTime(context.Context, *pb.GetLastUpdateTimeRequest) (*pb.GetLastUpdateTimeResponse, error) {
	return &pb.GetLastUpdateTimeResponse{UpdateTime: s.reg.UpdatedAt()}, nil
}

// GetRankTableConfig returns the full configuration snapshot. The update
// time and the config list come from one registry snapshot, so a replica
// never records a version ahead of the configs it holds.
func (s *ReplicationServer) GetRankTableConfig(context.Context, *pb.GetRankTableConfigRequest) (*pb.GetRankTableConfigResponse, error) {
	updateTime, configs := s.reg.Snapshot()

	out := make([]*pb.RankTableConfig, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, &pb.RankTableConfig{
			Appid:          cfg.Appid,
			AppSecret:      cfg.AppSecret,
			RankKey:        cfg.RankKey,
			CronExpression: cfg.CronExpression,
		})
	}
	s.log.Debug("snapshot served", zap.Int64("update_time", updateTime), zap.Int("boards", len(out)))
	return &pb.GetRankTableConfigResponse{UpdateTime: updateTime, RankTableConfigs: out}, nil
}

// Replicator is the replica-side pull loop keeping the local registry
// convergent with the master's.
type Replicator struct {
	log      *zap.Logger
	client   pb.ConfigReplicationClient
	reg      *registry.Registry
	interval time.Duration
}

// NewReplicator builds the pull loop against a dialed master client.
func NewReplicator(log *zap.Logger, client pb.ConfigReplicationClient, reg *registry.Registry) *Replicator {
	return &Replicator{
		log:      log.Named("replicator"),
		client:   client,
		reg:      reg,
		interval: pullInterval,
	}
}

// Run polls the master until ctx is cancelled. A failed tick leaves the
// local registry on its previous snapshot; the next tick retries.
func (r *Replicator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Info("pull loop started", zap.Duration("interval", r.interval))
	// First pull happens right away so a freshly booted replica does not
	// serve a stale bootstrap snapshot for a whole interval.
	if err := r.pullOnce(ctx); err != nil {
		r.log.Warn("pull failed, keeping previous snapshot", zap.Error(err))
	}
	for {
		select {
		case <-ctx.Done():
			r.log.Info("pull loop stopped")
			return
		case <-ticker.C:
			if err := r.pullOnce(ctx); err != nil {
				r.log.Warn("pull failed, keeping previous snapshot", zap.Error(err))
			}
		}
	}
}

// pullOnce performs one version check and, on a mismatch, one wholesale
// registry replacement.
func (r *Replicator) pullOnce(ctx context.Context) error {
	cursor, err := r.client.GetLastUpdateTime(ctx, &pb.GetLastUpdateTimeRequest{})
	if err != nil {
		return err
	}
	if cursor.GetUpdateTime() == r.reg.UpdatedAt() {
		return nil
	}

	snapshot, err := r.client.GetRankTableConfig(ctx, &pb.GetRankTableConfigRequest{})
	if err != nil {
		return err
	}

	configs := make([]rank.Config, 0, len(snapshot.GetRankTableConfigs()))
	for _, c := range snapshot.GetRankTableConfigs() {
		configs = append(configs, rank.Config{
			Appid:          c.GetAppid(),
			AppSecret:      c.GetAppSecret(),
			RankKey:        c.GetRankKey(),
			CronExpression: c.GetCronExpression(),
		})
	}
	r.reg.ReplaceAll(snapshot.GetUpdateTime(), configs)
	r.log.Info("registry replaced",
		zap.Int64("update_time", snapshot.GetUpdateTime()), zap.Int("boards", len(configs)))
	return nil
}
