// Package metrics defines and registers the custom Prometheus metrics for
// the InterviewSim account API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "interviewsim"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successfully created accounts.
// Label:
//   - with_resume: "true" when the registration carried a resume upload
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
	[]string{"with_resume"},
)

// UsersDeletedTotal counts delete-user requests by outcome.
// Label:
//   - result: "deleted" or "missing"
var UsersDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of delete-user requests, by outcome.",
	},
	[]string{"result"},
)

// ── File metrics ──────────────────────────────────────────────────────────────

// ResumeUploadsTotal counts resume uploads accepted through any path
// (registration, self resume update, admin update).
var ResumeUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resume_uploads_total",
		Help:      "Total number of resume files uploaded.",
	},
)

// FileDeletesTotal counts explicit blob deletions by type and outcome.
// Labels:
//   - file_type: "resume" or "report"
//   - result: "deleted" or "skipped"
var FileDeletesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "file_deletes_total",
		Help:      "Total number of blob deletions requested, by type and outcome.",
	},
	[]string{"file_type", "result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AdminLoginsTotal counts admin login attempts.
// Label:
//   - result: "success", "denied" or "rate_limited"
var AdminLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_logins_total",
		Help:      "Total number of admin login attempts, by result.",
	},
	[]string{"result"},
)
