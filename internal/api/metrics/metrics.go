// Package metrics defines and registers all custom Prometheus metrics for the
// movie API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "movie"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// SignupsTotal counts accounts created through self-registration.
// Label:
//   - user_type: "individual", "organization" or "author"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts registered, by user type.",
	},
	[]string{"user_type"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// PasswordResetsTotal follows the reset flow.
// Label:
//   - stage: "requested", "throttled", "completed" or "rejected"
var PasswordResetsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_total",
		Help:      "Total number of password reset steps, by stage.",
	},
	[]string{"stage"},
)

// ── Subscription metrics ──────────────────────────────────────────────────────

// SubscriptionsCreatedTotal counts persisted subscriptions.
// Label:
//   - subscription_type: "Basic", "Premium", "Gold" or "Diamond"
var SubscriptionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_created_total",
		Help:      "Total number of subscriptions created, by plan.",
	},
	[]string{"subscription_type"},
)

// PaymentDuration measures a subscription checkout including the cash-in call.
// Label:
//   - result: "paid" or "failed"
var PaymentDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "payment_duration_seconds",
		Help:      "Duration of subscription checkout from request to gateway answer.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailsTotal counts background mail outcomes.
// Label:
//   - result: "sent", "failed" or "dropped" (worker buffer full)
var MailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mails_total",
		Help:      "Total number of background mails, labelled by outcome.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of mails waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mails pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
