package ruleset

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rulesetParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aclmgr_ruleset_parse_duration_seconds",
			Help:    "Duration of ruleset batch parsing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ruleParseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aclmgr_rule_parse_total",
			Help: "Total number of rule lines parsed",
		},
		[]string{"status"}, // ok or error
	)

	rulesExpandedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aclmgr_rules_expanded_total",
			Help: "Total number of additional rules produced by expansion",
		},
	)
)
