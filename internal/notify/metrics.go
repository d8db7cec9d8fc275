package notify

import "github.com/prometheus/client_golang/prometheus"

var (
	notificationsPersisted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "notifications_persisted_total", Help: "Notification records written"},
		[]string{"tipo"},
	)
	pushTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "push_tokens_total", Help: "Push tokens handed to the gateway"},
		[]string{"mode", "result"},
	)
)

func init() { prometheus.MustRegister(notificationsPersisted, pushTokens) }
