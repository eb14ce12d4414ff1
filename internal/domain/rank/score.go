package rank

import (
	"math"
	"time"
)

// scoreEpoch is the fixed reference timestamp (seconds) the encoder
// measures submission time against. It sits far beyond any realistic
// wall clock so the tiebreak fraction stays inside (0, 1).
const scoreEpoch = 317265609600.0

// EncodeScore folds the submission time into the fractional part of the
// index score: encoded = score + (epoch - now) / epoch. Between two equal
// raw scores the earlier submission carries the larger fraction and
// therefore sorts higher in the descending index.
func EncodeScore(score int64, at time.Time) float64 {
	return float64(score) + (scoreEpoch-float64(at.Unix()))/scoreEpoch
}

// DecodeScore drops the tiebreak fraction and returns the raw score.
func DecodeScore(encoded float64) int64 {
	return int64(math.Floor(encoded))
}
