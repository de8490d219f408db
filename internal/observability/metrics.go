package observability

import "github.com/prometheus/client_golang/prometheus"

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extracurricular",
		Subsystem: "roster",
		Name:      "signups_total",
		Help:      "Number of successful activity signups.",
	}, []string{"activity"})

	unregisterCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extracurricular",
		Subsystem: "roster",
		Name:      "unregistrations_total",
		Help:      "Number of successful activity unregistrations.",
	}, []string{"activity"})

	rejectionCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extracurricular",
		Subsystem: "roster",
		Name:      "rejections_total",
		Help:      "Number of roster mutations rejected, labeled by reason.",
	}, []string{"reason"})

	participantsGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "extracurricular",
		Subsystem: "roster",
		Name:      "participants",
		Help:      "Current number of participants per activity.",
	}, []string{"activity"})
)

func init() {
	prometheus.MustRegister(signupCounter, unregisterCounter, rejectionCounter, participantsGauge)
}

// RecordSignup counts a signup and updates the roster size gauge.
func RecordSignup(activity string, participants int) {
	signupCounter.WithLabelValues(activity).Inc()
	participantsGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordUnregistration counts an unregistration and updates the roster size gauge.
func RecordUnregistration(activity string, participants int) {
	unregisterCounter.WithLabelValues(activity).Inc()
	participantsGauge.WithLabelValues(activity).Set(float64(participants))
}

// RecordRejection counts a rejected mutation.
func RecordRejection(reason string) {
	rejectionCounter.WithLabelValues(reason).Inc()
}

// RecordRosterSize sets the roster size gauge, used when seeding.
func RecordRosterSize(activity string, participants int) {
	participantsGauge.WithLabelValues(activity).Set(float64(participants))
}
