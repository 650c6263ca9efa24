package ruleset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRule(t *testing.T) {
	rule, rerr := ParseRule("allow tcp outside any inside 22")
	require.Nil(t, rerr)

	assert.Equal(t, ActionAllow, rule.Action)
	assert.Equal(t, ProtocolTCP, rule.Protocol)
	assert.Equal(t, "outside", rule.SrcPrefix)
	assert.Equal(t, AnyPort(), rule.SrcPort)
	assert.Equal(t, "inside", rule.DstPrefix)
	assert.Equal(t, PortMap{{Start: 22, End: 22}}, rule.DstPort.Map)
}

func TestParseRuleProtocolCaseInsensitive(t *testing.T) {
	rule, rerr := ParseRule("deny TCP outside any inside 22")
	require.Nil(t, rerr)
	assert.Equal(t, ProtocolTCP, rule.Protocol)
}

func TestParseRuleRoundTrip(t *testing.T) {
	lines := []string{
		"allow icmp outside any inside 8",
		"deny tcp outside any inside 22",
		"allowlog ip outside any inside 80,443",
		"denylog udp outside any inside 161-162",
		"allow tcp inside any outside 22,80,443,9000-9010",
	}

	for _, line := range lines {
		rule, rerr := ParseRule(line)
		require.Nil(t, rerr, line)

		again, rerr := ParseRule(rule.String())
		require.Nil(t, rerr, rule.String())
		assert.Equal(t, rule, again)
	}
}

func TestParseRuleLength(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too short", line: "short rule."},
		{name: "too long", line: "this is an extra long rule, ok."},
		{name: "empty", line: ""},
		{name: "seven fields", line: "allow tcp outside any inside 22 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rerr := ParseRule(tt.line)
			require.NotNil(t, rerr)
			assert.Equal(t, RuleLengthErr, rerr.Code)
			assert.Equal(t, len(tt.line)+1, rerr.Loc.Column, "length errors blame end of line")
		})
	}
}

func TestParseRuleDoubleListUnsupported(t *testing.T) {
	// Both port fields hold comma lists: rejected before field parsing,
	// whether or not each list is individually well-formed.
	lines := []string{
		"allow tcp inside 20,21 outside 9000,9010",
		"allow tcp inside 20,bogus outside 9000,??",
	}

	for _, line := range lines {
		_, rerr := ParseRule(line)
		require.NotNil(t, rerr, line)
		assert.Equal(t, RuleExpansionUnsupported, rerr.Code)
		assert.Equal(t, len(line)+1, rerr.Loc.Column)
	}
}

func TestParseRuleFieldErrors(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    FieldError
		wantCol int
	}{
		{
			name:    "bad action",
			line:    "[failhere] ip inside any outside any",
			want:    ActionInvalid,
			wantCol: 0,
		},
		{
			name:    "bad protocol",
			line:    "deny [failhere] inside any outside any",
			want:    ProtocolUnsupported,
			wantCol: 5,
		},
		{
			name:    "bad src port",
			line:    "deny ip inside [failhere] outside any",
			want:    PortInvalid,
			wantCol: 15,
		},
		{
			name:    "bad dst port",
			line:    "deny ip inside any outside [failhere]",
			want:    PortInvalid,
			wantCol: 27,
		},
		{
			name:    "uppercase action is not accepted",
			line:    "ALLOW tcp inside any outside any",
			want:    ActionInvalid,
			wantCol: 0,
		},
		{
			name:    "reversed src range",
			line:    "deny tcp inside 9010-9000 outside any",
			want:    PortOrderInvalid,
			wantCol: 16,
		},
		{
			name:    "reversed dst range",
			line:    "allow udp outside any inside 162-161",
			want:    PortOrderInvalid,
			wantCol: 29,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rerr := ParseRule(tt.line)
			require.NotNil(t, rerr)
			assert.Equal(t, tt.want, rerr.Code)
			assert.Equal(t, tt.wantCol, rerr.Loc.Column)
			assert.True(t, errors.Is(rerr, tt.want))
		})
	}
}

func TestParseRuleReversedRangeIsOrderError(t *testing.T) {
	// PortOrderInvalid must never degrade to PortInvalid: the two demand
	// different operator fixes.
	_, rerr := ParseRule("deny tcp inside 9010-9000 outside any")
	require.NotNil(t, rerr)
	assert.Equal(t, PortOrderInvalid, rerr.Code)
	assert.NotEqual(t, PortInvalid, rerr.Code)
}

func TestRuleErrorSuggestion(t *testing.T) {
	_, rerr := ParseRule("alow tcp inside any outside any")
	require.NotNil(t, rerr)
	assert.Equal(t, ActionInvalid, rerr.Code)
	assert.Contains(t, rerr.Error(), `did you mean "allow"?`)

	_, rerr = ParseRule("deny tpc inside any outside any")
	require.NotNil(t, rerr)
	assert.Equal(t, ProtocolUnsupported, rerr.Code)
	assert.Contains(t, rerr.Error(), `did you mean "tcp"?`)

	// Nothing close: no suggestion offered.
	_, rerr = ParseRule("[failhere] tcp inside any outside any")
	require.NotNil(t, rerr)
	assert.NotContains(t, rerr.Error(), "did you mean")
}

func TestRuleExpandSingleValued(t *testing.T) {
	rule, rerr := ParseRule("deny tcp outside any inside 22")
	require.Nil(t, rerr)

	expanded := rule.Expand()
	require.Len(t, expanded, 1)
	assert.Equal(t, rule, expanded[0])
}

func TestRuleExpandDstList(t *testing.T) {
	rule, rerr := ParseRule("allowlog ip outside any inside 80,443")
	require.Nil(t, rerr)

	expanded := rule.Expand()
	require.Len(t, expanded, 2)

	assert.Equal(t, SinglePort(80), expanded[0].DstPort)
	assert.Equal(t, SinglePort(443), expanded[1].DstPort)

	// Every other field is untouched.
	for _, e := range expanded {
		assert.Equal(t, rule.Action, e.Action)
		assert.Equal(t, rule.Protocol, e.Protocol)
		assert.Equal(t, rule.SrcPrefix, e.SrcPrefix)
		assert.Equal(t, rule.SrcPort, e.SrcPort)
		assert.Equal(t, rule.DstPrefix, e.DstPrefix)
	}
}

func TestRuleExpandRangeEndpointsOnly(t *testing.T) {
	rule, rerr := ParseRule("allow tcp inside 9000-9010 outside any")
	require.Nil(t, rerr)

	expanded := rule.Expand()
	require.Len(t, expanded, 2, "a range expands to its two endpoints, not its interior")

	assert.Equal(t, SinglePort(9000), expanded[0].SrcPort)
	assert.Equal(t, SinglePort(9010), expanded[1].SrcPort)
	for _, e := range expanded {
		assert.NotEqual(t, SinglePort(9005), e.SrcPort, "interior ports must not be produced")
	}
}

func TestRuleExpandPrefersSrc(t *testing.T) {
	// src is a list, dst a range: src wins and dst keeps its parsed form.
	rule, rerr := ParseRule("allow tcp inside 20,21 outside 8000-8010")
	require.Nil(t, rerr)

	expanded := rule.Expand()
	require.Len(t, expanded, 2)
	assert.Equal(t, SinglePort(20), expanded[0].SrcPort)
	assert.Equal(t, SinglePort(21), expanded[1].SrcPort)
	for _, e := range expanded {
		assert.Equal(t, rule.DstPort, e.DstPort)
	}
}

func TestRuleExpandMixedListOrder(t *testing.T) {
	rule, rerr := ParseRule("allow tcp inside any outside 22,80,443,9000-9010")
	require.Nil(t, rerr)

	expanded := rule.Expand()
	require.Len(t, expanded, 5)

	want := []uint16{22, 80, 443, 9000, 9010}
	for i, p := range want {
		assert.Equal(t, SinglePort(p), expanded[i].DstPort)
	}
}
