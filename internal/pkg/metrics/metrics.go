// Package metrics defines and registers the custom Prometheus metrics of the
// task manager API. Metric names, labels and help strings live here only.
//
// All collectors are registered with the default registry through promauto
// when the package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskmanager"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// UsersRegisteredTotal counts accounts created through /api/auth/register.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of registered users.",
	},
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

// ── Project / task metrics ────────────────────────────────────────────────────

// ProjectsCreatedTotal counts created projects by initial status.
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by status.",
	},
	[]string{"status"},
)

// TasksCreatedTotal counts created tasks by initial status.
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by status.",
	},
	[]string{"status"},
)

// CascadeDeletedTasksTotal counts tasks removed together with their project.
var CascadeDeletedTasksTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deleted_tasks_total",
		Help:      "Total number of tasks deleted by project cascade.",
	},
)

// ProjectListCacheTotal counts project list cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var ProjectListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_list_cache_total",
		Help:      "Total number of project list cache lookups, labelled by result.",
	},
	[]string{"result"},
)
