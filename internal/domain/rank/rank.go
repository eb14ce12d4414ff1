// Package rank holds the leaderboard domain model shared by the durable
// store, the sorted index, and the services: tenant configuration, score
// rows, and the naming + score-encoding rules both backends agree on.
package rank

import "fmt"

// Config is one leaderboard definition, keyed by (appid, rank_key).
// A tenant (appid) may own several boards; all of them share the tenant's
// app_secret.
type Config struct {
	Appid          string `json:"appid"`
	AppSecret      string `json:"app_secret"`
	RankKey        string `json:"rank_key"`
	CronExpression string `json:"cron_expression"` // reset schedule; empty means the board never resets
	Remark         string `json:"remark,omitempty"`
}

// UserScore is one durable leaderboard row.
type UserScore struct {
	Openid   string `json:"openid"`
	NickName string `json:"nick_name"`
	Score    int64  `json:"score"`
}

// IndexEntry is one (member, encoded score) pair read back from the
// sorted index. Decode the score with DecodeScore before surfacing it.
type IndexEntry struct {
	Openid  string
	Encoded float64
}

// RankedUser is a fully hydrated top-N row: decoded score, nickname from
// the user-info hash, and the 1-based position within the returned page.
type RankedUser struct {
	Openid   string
	NickName string
	Score    int64
	Ranking  int64
}

// TableName returns the per-board MySQL table name.
func TableName(appid, rankKey string) string {
	return fmt.Sprintf("rank_%s_%s", appid, rankKey)
}

// IndexKey returns the Redis sorted-set key holding the board.
func IndexKey(appid, rankKey string) string {
	return fmt.Sprintf("rank:%s:%s", appid, rankKey)
}

// UserInfoKey returns the Redis hash key mapping openid to nickname for
// one tenant. Nicknames are tenant-wide, not per-board.
func UserInfoKey(appid string) string {
	return fmt.Sprintf("userinfo:%s", appid)
}
