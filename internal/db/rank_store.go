package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/repo"
)

const configTable = "rank_table_config"

// mysqlErrDupEntry is server error 1062 (ER_DUP_ENTRY).
const mysqlErrDupEntry = 1062

// RankStore implements repo.DurableStore over the split MySQL pools.
// Writes and config reads go to the master; row reads go to the slave.
type RankStore struct {
	log *zap.Logger
	db  *DB
}

// NewRankStore builds the durable store.
func NewRankStore(log *zap.Logger, db *DB) *RankStore {
	return &RankStore{log: log.Named("rankstore"), db: db}
}

// UpsertScore inserts or overwrites the member's row in the board table.
func (s *RankStore) UpsertScore(ctx context.Context, appid, rankKey string, row rank.UserScore) error {
	q := fmt.Sprintf(
		"INSERT INTO %s (openid, nick_name, score) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE nick_name = ?, score = ?",
		quoteIdent(rank.TableName(appid, rankKey)),
	)
	res, err := s.db.Master.ExecContext(ctx, q, row.Openid, row.NickName, row.Score, row.NickName, row.Score)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	affected, _ := res.RowsAffected()
	s.log.Debug("score upserted",
		zap.String("appid", appid),
		zap.String("rank_key", rankKey),
		zap.String("openid", row.Openid),
		zap.Int64("rows_affected", affected),
	)
	return nil
}

// UserScore reads one row by openid from the slave pool.
func (s *RankStore) UserScore(ctx context.Context, appid, rankKey, openid string) (rank.UserScore, error) {
	q := fmt.Sprintf(
		"SELECT openid, nick_name, score FROM %s WHERE openid = ?",
		quoteIdent(rank.TableName(appid, rankKey)),
	)
	var row rank.UserScore
	err := s.db.Slave.QueryRowContext(ctx, q, openid).Scan(&row.Openid, &row.NickName, &row.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return rank.UserScore{}, repo.ErrScoreNotFound
	}
	if err != nil {
		return rank.UserScore{}, fmt.Errorf("select score: %w", err)
	}
	return row, nil
}

// PageScores reads up to limit rows starting at offset, in table order.
func (s *RankStore) PageScores(ctx context.Context, appid, rankKey string, offset, limit int64) ([]rank.UserScore, error) {
	q := fmt.Sprintf(
		"SELECT openid, nick_name, score FROM %s LIMIT ?, ?",
		quoteIdent(rank.TableName(appid, rankKey)),
	)
	rows, err := s.db.Slave.QueryContext(ctx, q, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("select score page: %w", err)
	}
	defer rows.Close()

	var page []rank.UserScore
	for rows.Next() {
		var row rank.UserScore
		if err := rows.Scan(&row.Openid, &row.NickName, &row.Score); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		page = append(page, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score page: %w", err)
	}
	return page, nil
}

// ClearScores wipes the board table. The table itself stays provisioned.
func (s *RankStore) ClearScores(ctx context.Context, appid, rankKey string) error {
	q := fmt.Sprintf("DELETE FROM %s", quoteIdent(rank.TableName(appid, rankKey)))
	if _, err := s.db.Master.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}
	return nil
}

// Configs loads every leaderboard definition. Reads the master pool so
// boot always sees its own recent writes.
func (s *RankStore) Configs(ctx context.Context) ([]rank.Config, error) {
	q := "SELECT appid, app_secret, rank_key, cron_expression, remark FROM " + configTable
	rows, err := s.db.Master.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select configs: %w", err)
	}
	defer rows.Close()

	var configs []rank.Config
	for rows.Next() {
		var cfg rank.Config
		if err := rows.Scan(&cfg.Appid, &cfg.AppSecret, &cfg.RankKey, &cfg.CronExpression, &cfg.Remark); err != nil {
			return nil, fmt.Errorf("scan config row: %w", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate configs: %w", err)
	}
	return configs, nil
}

// InsertConfig writes the definition row and provisions the board table
// via the CREATE_RANK_TABLE procedure, atomically.
func (s *RankStore) InsertConfig(ctx context.Context, cfg rank.Config) error {
	tx, err := s.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert config: %w", err)
	}
	defer tx.Rollback()

	q := "INSERT INTO " + configTable + " (appid, app_secret, rank_key, cron_expression, remark) VALUES (?, ?, ?, ?, ?)"
	if _, err := tx.ExecContext(ctx, q, cfg.Appid, cfg.AppSecret, cfg.RankKey, cfg.CronExpression, cfg.Remark); err != nil {
		if isDupEntry(err) {
			return fmt.Errorf("insert config: %w", repo.ErrDuplicateConfig)
		}
		return fmt.Errorf("insert config: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "CALL CREATE_RANK_TABLE(?, ?)", cfg.Appid, cfg.RankKey); err != nil {
		return fmt.Errorf("create rank table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert config: %w", err)
	}
	s.log.Info("config inserted", zap.String("appid", cfg.Appid), zap.String("rank_key", cfg.RankKey))
	return nil
}

// DeleteConfig removes the definition row from the config table.
func (s *RankStore) DeleteConfig(ctx context.Context, appid, rankKey string) error {
	q := "DELETE FROM " + configTable + " WHERE appid = ? AND rank_key = ?"
	if _, err := s.db.Master.ExecContext(ctx, q, appid, rankKey); err != nil {
		return fmt.Errorf("delete config: %w", err)
	}
	return nil
}

func isDupEntry(err error) bool {
	var merr *mysql.MySQLError
	return errors.As(err, &merr) && merr.Number == mysqlErrDupEntry
}

// quoteIdent backtick-quotes a dynamic identifier. Board tables are named
// from request fields, so embedded backticks must be escaped.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
