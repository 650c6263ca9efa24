package ruleset

import (
	"fmt"
	"strings"
	"unicode"
)

// Action is what a rule does with matching traffic.
type Action string

const (
	ActionAllow    Action = "allow"
	ActionDeny     Action = "deny"
	ActionAllowLog Action = "allowlog"
	ActionDenyLog  Action = "denylog"
)

// SupportedActions lists the action vocabulary in canonical order.
func SupportedActions() []string {
	return []string{
		string(ActionAllow),
		string(ActionDeny),
		string(ActionAllowLog),
		string(ActionDenyLog),
	}
}

// ParseAction matches the action vocabulary exactly (lowercase only).
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionAllow, ActionDeny, ActionAllowLog, ActionDenyLog:
		return Action(s), nil
	default:
		return "", ActionInvalid
	}
}

// Protocol is the IP protocol a rule matches.
type Protocol string

const (
	ProtocolTCP  Protocol = "tcp"
	ProtocolUDP  Protocol = "udp"
	ProtocolICMP Protocol = "icmp"
	ProtocolIP   Protocol = "ip"
)

// SupportedProtocols lists the protocol vocabulary in canonical order.
func SupportedProtocols() []string {
	return []string{
		string(ProtocolTCP),
		string(ProtocolUDP),
		string(ProtocolICMP),
		string(ProtocolIP),
	}
}

// ParseProtocol matches the protocol vocabulary case-insensitively.
func ParseProtocol(s string) (Protocol, error) {
	switch Protocol(strings.ToLower(s)) {
	case ProtocolTCP, ProtocolUDP, ProtocolICMP, ProtocolIP:
		return Protocol(strings.ToLower(s)), nil
	default:
		return "", ProtocolUnsupported
	}
}

// field is one token of a rule line plus the byte offset of its first
// character within the source line.
type field struct {
	text   string
	column int
}

// splitFields splits a line on whitespace runs, recording where each token
// starts. Leading whitespace is handled naturally: columns always refer to
// the line as given.
func splitFields(line string) []field {
	var fields []field
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) {
			if start >= 0 {
				fields = append(fields, field{text: line[start:i], column: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fields = append(fields, field{text: line[start:], column: start})
	}
	return fields
}

// Rule is one validated ACL entry. Rules are never mutated after
// construction; expansion clones and substitutes.
type Rule struct {
	Action    Action   `json:"action" yaml:"action"`
	Protocol  Protocol `json:"protocol" yaml:"protocol"`
	SrcPrefix string   `json:"src_prefix" yaml:"src_prefix"`
	SrcPort   PortSpec `json:"src_port" yaml:"src_port"`
	DstPrefix string   `json:"dst_prefix" yaml:"dst_prefix"`
	DstPort   PortSpec `json:"dst_port" yaml:"dst_port"`
}

// ParseRule validates one rule line. The returned diagnostic carries the
// column of the offending field; Location.Line is always 0 here and is
// filled in by the batch parser. Whole-rule constraints (field count, the
// two-list expansion limit) blame the end of the line.
func ParseRule(line string) (Rule, *RuleError) {
	fields := splitFields(line)

	if len(fields) != 6 {
		return Rule{}, &RuleError{
			Code: RuleLengthErr,
			Loc:  Location{Column: len(line) + 1},
		}
	}

	// Expanding two independently multi-valued fields would need a
	// cartesian product, which downstream tooling does not support.
	if strings.Contains(fields[3].text, ",") && strings.Contains(fields[5].text, ",") {
		return Rule{}, &RuleError{
			Code: RuleExpansionUnsupported,
			Loc:  Location{Column: len(line) + 1},
		}
	}

	action, err := ParseAction(fields[0].text)
	if err != nil {
		return Rule{}, fieldError(err, fields[0])
	}

	protocol, err := ParseProtocol(fields[1].text)
	if err != nil {
		return Rule{}, fieldError(err, fields[1])
	}

	srcPort, err := ParsePortSpec(fields[3].text)
	if err != nil {
		return Rule{}, fieldError(err, fields[3])
	}

	dstPort, err := ParsePortSpec(fields[5].text)
	if err != nil {
		return Rule{}, fieldError(err, fields[5])
	}

	return Rule{
		Action:    action,
		Protocol:  protocol,
		SrcPrefix: fields[2].text,
		SrcPort:   srcPort,
		DstPrefix: fields[4].text,
		DstPort:   dstPort,
	}, nil
}

func fieldError(err error, f field) *RuleError {
	code, ok := err.(FieldError)
	if !ok {
		// Field parsers only ever return FieldError codes.
		panic(fmt.Sprintf("ruleset: field parser returned %T", err))
	}
	return &RuleError{
		Code:  code,
		Loc:   Location{Column: f.column},
		Token: f.text,
	}
}

// Expand rewrites a rule with a multi-valued port field into one rule per
// value. The src port is preferred as the expansion source when it is
// expandable, otherwise the dst port is considered. For the chosen field
// only the written range endpoints are enumerated (each entry's start, plus
// its end when distinct) — never the interior ports a range covers. A rule
// with no expandable port field is returned as-is in a single-element slice.
func (r Rule) Expand() []Rule {
	switch {
	case r.SrcPort.Expandable():
		ports := r.SrcPort.Map.endpoints()
		out := make([]Rule, 0, len(ports))
		for _, p := range ports {
			clone := r
			clone.SrcPort = SinglePort(p)
			out = append(out, clone)
		}
		return out
	case r.DstPort.Expandable():
		ports := r.DstPort.Map.endpoints()
		out := make([]Rule, 0, len(ports))
		for _, p := range ports {
			clone := r
			clone.DstPort = SinglePort(p)
			out = append(out, clone)
		}
		return out
	default:
		return []Rule{r}
	}
}

// String renders the rule back to its line form. Round-trips through
// ParseRule; list separators are normalized to ",".
func (r Rule) String() string {
	return fmt.Sprintf("%s %s %s %s %s %s",
		r.Action, r.Protocol, r.SrcPrefix, r.SrcPort, r.DstPrefix, r.DstPort)
}
