package database

import (
	"database/sql"
	"fmt"
	"math"
)

// ModeStats summarizes a user's results for one difficulty mode.
type ModeStats struct {
	Average int
	Count   int
}

// GetTrackingStats returns the rounded average score and session count
// per difficulty mode for a user. Modes with no sessions report zeros.
func (db *DB) GetTrackingStats(userID int64) (map[Mode]ModeStats, error) {
	stats := make(map[Mode]ModeStats, 3)

	for _, mode := range Modes() {
		var avg sql.NullFloat64
		var count int
		err := db.queryRow(`
			SELECT AVG(score_percent), COUNT(id)
			FROM session
			WHERE user_id = ? AND mode = ?
		`, userID, string(mode)).Scan(&avg, &count)
		if err != nil {
			return nil, fmt.Errorf("failed to get stats for mode %s: %w", mode, err)
		}

		s := ModeStats{Count: count}
		if avg.Valid {
			s.Average = int(math.Round(avg.Float64))
		}
		stats[mode] = s
	}

	return stats, nil
}
