// Package metrics defines the custom Prometheus metrics of the inventory API.
// All metrics register with the default registry on import; /metrics gathers
// it alongside the per-router echoprometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Authorization metrics ────────────────────────────────────────────────────

// AuthDecisionsTotal counts gate decisions.
// Label:
//   - result: "allowed", "unauthenticated", "denied" or "error"
var AuthDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_decisions_total",
		Help:      "Total number of authorization gate decisions, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RoleChangesTotal counts successful role changes by the new role.
var RoleChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_changes_total",
		Help:      "Total number of user role changes, by assigned role.",
	},
	[]string{"role"},
)

// ── Product metrics ──────────────────────────────────────────────────────────

// ProductWritesTotal counts product mutations.
// Label:
//   - op: "create", "update" or "delete"
var ProductWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_writes_total",
		Help:      "Total number of product documents written, by operation.",
	},
	[]string{"op"},
)

// ── Audit metrics ────────────────────────────────────────────────────────────

// AuditEntriesTotal counts audit entries handled by the dispatcher.
// Label:
//   - outcome: "written", "failed" or "dropped"
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit entries, by outcome.",
	},
	[]string{"outcome"},
)
