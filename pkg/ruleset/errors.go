package ruleset

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FieldError identifies which grammar constraint a rule field violated.
// The set of codes is closed; rendering of human-readable text is keyed
// off the code so alternate presentations never touch parsing logic.
type FieldError string

const (
	// ActionInvalid reports a first field outside the action vocabulary.
	ActionInvalid FieldError = "ActionInvalid"

	// ProtocolUnsupported reports a second field outside the protocol vocabulary.
	ProtocolUnsupported FieldError = "ProtocolUnsupported"

	// PortInvalid reports a port field that is not "any", a port number,
	// a range, or a comma-separated list of ports and ranges.
	PortInvalid FieldError = "PortInvalid"

	// PortOrderInvalid reports a syntactically valid range whose start
	// exceeds its end. Kept distinct from PortInvalid: the operator fix
	// is different (swap the bounds, not rewrite the token).
	PortOrderInvalid FieldError = "PortOrderInvalid"

	// RuleLengthErr reports a line with a field count other than six.
	RuleLengthErr FieldError = "RuleLengthErr"

	// RuleExpansionUnsupported reports a rule whose src and dst port
	// fields are both comma lists. Expanding both would require a
	// cartesian product.
	RuleExpansionUnsupported FieldError = "RuleExpansionUnsupported"
)

// fieldErrorMessages maps each code to its canonical description. This is
// the single change site when the vocabulary grows.
var fieldErrorMessages = map[FieldError]string{
	ActionInvalid:            "expected 'allow', 'deny', 'allowlog', or 'denylog'",
	ProtocolUnsupported:      "expected 'ip', 'tcp', 'udp', or 'icmp'",
	PortInvalid:              "expected a port (0-65535), range of ports, comma-separated list of ports, or 'any'",
	PortOrderInvalid:         "port range start must be less than port range end",
	RuleLengthErr:            "expected 6 fields",
	RuleExpansionUnsupported: "both src & dst ports cannot be port lists",
}

// Error implements the error interface so codes work as sentinel errors
// with errors.Is.
func (c FieldError) Error() string {
	return string(c) + ": " + c.Message()
}

// Message returns the canonical description for the code.
func (c FieldError) Message() string {
	if msg, ok := fieldErrorMessages[c]; ok {
		return msg
	}
	return string(c)
}

// Location is the position of an offending field: Line is the 0-based index
// of the rule within its batch, Column the 0-based byte offset of the
// field's first character within the source line. Whole-rule failures
// (RuleLengthErr, RuleExpansionUnsupported) blame the end of the line since
// no single field is at fault.
type Location struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// RuleError is a single validation diagnostic: a closed code, the location
// of the offending field, and the field text when one field is to blame.
type RuleError struct {
	Code  FieldError `json:"code" yaml:"code"`
	Loc   Location   `json:"location" yaml:"location"`
	Token string     `json:"token,omitempty" yaml:"token,omitempty"`
}

// Detail renders the diagnostic without its location. Vocabulary failures
// include a nearest-match suggestion when the token is plausibly a typo.
func (e *RuleError) Detail() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Code.Message())

	switch e.Code {
	case ActionInvalid:
		if s, ok := nearestToken(e.Token, SupportedActions()); ok {
			fmt.Fprintf(&b, " (did you mean %q?)", s)
		}
	case ProtocolUnsupported:
		if s, ok := nearestToken(e.Token, SupportedProtocols()); ok {
			fmt.Fprintf(&b, " (did you mean %q?)", s)
		}
	}
	return b.String()
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Loc.Line, e.Loc.Column, e.Detail())
}

// Unwrap exposes the code for errors.Is matching.
func (e *RuleError) Unwrap() error {
	return e.Code
}

// RuleErrors is the complete, ordered diagnostic list for one batch.
type RuleErrors []*RuleError

// Error implements the error interface, one diagnostic per line.
func (e RuleErrors) Error() string {
	msgs := make([]string, len(e))
	for i, re := range e {
		msgs[i] = re.Error()
	}
	return strings.Join(msgs, "\n")
}

// nearestToken returns the vocabulary entry closest to input, if any entry
// is within edit distance 2. Case differences alone never block a match.
func nearestToken(input string, vocab []string) (string, bool) {
	if input == "" {
		return "", false
	}
	best, bestDist := "", 3
	for _, candidate := range vocab {
		d := levenshtein.ComputeDistance(strings.ToLower(input), candidate)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best, best != ""
}
