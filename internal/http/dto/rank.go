// Package dto declares the JSON request/response shapes of the HTTP API.
// Validation lives in the `binding` tags; handlers bind and hand the
// validated struct to the service layer.
package dto

// UpdateScore is the body of POST /api/rank/update_score.
type UpdateScore struct {
	Appid    string `json:"appid" binding:"required,min=3,max=64"`
	RankKey  string `json:"rank_key" binding:"required,min=3,max=20"`
	Openid   string `json:"openid" binding:"required,min=3,max=64"`
	NickName string `json:"nick_name" binding:"required"`
	Score    int64  `json:"score" binding:"gte=0,lte=100000000"`
}

// UserQuery is the body of POST /api/rank/get_user_rank and
// POST /api/rank/get_user_score.
type UserQuery struct {
	Appid   string `json:"appid" binding:"required,min=3,max=64"`
	Openid  string `json:"openid" binding:"required,min=3,max=64"`
	RankKey string `json:"rank_key" binding:"required,min=3,max=20"`
}

// TopQuery is the body of POST /api/rank/get_top_user_rank.
type TopQuery struct {
	Appid   string `json:"appid" binding:"required,min=3,max=64"`
	RankKey string `json:"rank_key" binding:"required,min=3,max=20"`
	TopN    int64  `json:"top_n" binding:"required,gte=1,lte=30"`
}

// AddRankConfig is the body of POST /api/rank/add_rank_config. The cron
// expression is checked by the service; an empty one means the board
// never resets.
type AddRankConfig struct {
	Appid          string `json:"appid" binding:"required,min=3,max=64"`
	RankKey        string `json:"rank_key" binding:"required,min=3,max=20"`
	AppSecret      string `json:"app_secret" binding:"required,min=8,max=64"`
	CronExpression string `json:"cron_expression"`
	Remark         string `json:"remark" binding:"max=255"`
}

// RankedUser is one row of the get_top_user_rank response.
type RankedUser struct {
	Openid   string `json:"openid"`
	NickName string `json:"nick_name"`
	Score    int64  `json:"score"`
	Ranking  int64  `json:"ranking"`
}

// UserRank is the get_user_rank response payload.
type UserRank struct {
	Ranking int64 `json:"ranking"`
}

// UserScore is the get_user_score response payload.
type UserScore struct {
	Score int64 `json:"score"`
}
