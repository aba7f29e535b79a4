package model

import (
	"time"
)

// FocusSession is one recorded deep-work session. It is written once when
// the session ends and never mutated afterwards.
type FocusSession struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
	Intent           string     `json:"intent"`
	DurationSeconds  int        `json:"duration_seconds"`
	StartedAt        time.Time  `json:"started_at"`
	EndedAt          *time.Time `json:"ended_at,omitempty"`
	Completed        bool       `json:"completed"`
	DistractionCount int        `json:"distraction_count,omitempty"`
}

// UserStats is the derived summary shown on the dashboard. It is recomputed
// on demand and never persisted.
type UserStats struct {
	TotalFocusMinutes int `json:"total_focus_minutes"`
	SessionsCompleted int `json:"sessions_completed"`
	StreakDays        int `json:"streak_days"`
}

// CalculateStats reduces a set of sessions into UserStats. Only completed
// sessions contribute. StreakDays counts distinct local calendar days with
// at least one completed session; it is not a consecutive-day streak.
// Input order is irrelevant and input records are trusted as-is.
func CalculateStats(sessions []FocusSession) UserStats {
	if len(sessions) == 0 {
		return UserStats{}
	}

	totalSeconds := 0
	completed := 0
	days := make(map[string]struct{})
	for _, s := range sessions {
		if !s.Completed {
			continue
		}
		completed++
		totalSeconds += s.DurationSeconds
		days[s.StartedAt.Local().Format("2006-01-02")] = struct{}{}
	}

	return UserStats{
		TotalFocusMinutes: totalSeconds / 60,
		SessionsCompleted: completed,
		StreakDays:        len(days),
	}
}
