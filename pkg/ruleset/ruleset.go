package ruleset

import (
	"log/slog"
	"strings"
	"time"
)

// Ruleset is an ordered collection of validated rules.
type Ruleset []Rule

// Parse validates every line in order and returns either the full ruleset
// or the full diagnostic list. Parsing never short-circuits: every line is
// attempted even after failures, and a single bad line fails the whole
// batch — there is no partial success. Each diagnostic's Location.Line is
// the 0-based index of its line in the input.
func Parse(lines []string) (Ruleset, error) {
	start := time.Now()

	rs := make(Ruleset, 0, len(lines))
	var errs RuleErrors

	for i, line := range lines {
		rule, rerr := ParseRule(line)
		if rerr != nil {
			rerr.Loc.Line = i
			errs = append(errs, rerr)
			ruleParseTotal.WithLabelValues("error").Inc()
			continue
		}
		rs = append(rs, rule)
		ruleParseTotal.WithLabelValues("ok").Inc()
	}

	rulesetParseDuration.Observe(time.Since(start).Seconds())

	if len(errs) > 0 {
		slog.Debug("ruleset parse failed",
			"lines", len(lines),
			"errors", len(errs))
		return nil, errs
	}

	slog.Debug("ruleset parsed",
		"lines", len(lines),
		"rules", len(rs))
	return rs, nil
}

// Expand maps Rule.Expand over every member and concatenates the results.
// Input order is preserved: all expansions of rule i precede those of
// rule i+1.
func (rs Ruleset) Expand() Ruleset {
	expanded := make(Ruleset, 0, len(rs))
	for _, r := range rs {
		expanded = append(expanded, r.Expand()...)
	}
	rulesExpandedTotal.Add(float64(len(expanded) - len(rs)))

	slog.Debug("ruleset expanded",
		"rules", len(rs),
		"expanded", len(expanded))
	return expanded
}

// String renders one rule line per row, for logs and debugging.
func (rs Ruleset) String() string {
	var b strings.Builder
	b.WriteString("Ruleset(\n")
	for _, r := range rs {
		b.WriteString("  ")
		b.WriteString(r.String())
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}
