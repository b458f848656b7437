package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsGraded counts grading outcomes: correct, incorrect,
	// already_solved, guest.
	SubmissionsGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "playex",
		Name:      "submissions_graded_total",
		Help:      "Graded answer submissions by outcome.",
	}, []string{"outcome"})

	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "playex",
		Name:      "points_awarded_total",
		Help:      "Total points credited to users.",
	})

	PracticeSessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "playex",
		Name:      "practice_sessions_started_total",
		Help:      "Timed practice sessions started.",
	})
)
