package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(focusSessionsRecorded, focusMinutesRecorded)
}

var (
	focusSessionsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "focus_sessions_recorded_total",
			Help: "Count of focus sessions persisted, split by completion.",
		},
		[]string{"completed"},
	)

	focusMinutesRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "focus_minutes_recorded_total",
			Help: "Sum of completed focus minutes persisted.",
		},
	)
)

func ObserveFocusSession(completed bool, durationSeconds int) {
	if completed {
		focusSessionsRecorded.WithLabelValues("true").Inc()
		focusMinutesRecorded.Add(float64(durationSeconds) / 60)
		return
	}
	focusSessionsRecorded.WithLabelValues("false").Inc()
}
