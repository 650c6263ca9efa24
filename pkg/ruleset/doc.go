// Package ruleset implements the ACL rule language: tokenizing rule lines,
// validating each field against the closed grammar, and expanding rules whose
// port fields name more than one discrete value.
//
// # Rule grammar
//
// Each line holds exactly six whitespace-separated fields in fixed order:
//
//	<action> <protocol> <src_prefix> <src_port> <dst_prefix> <dst_port>
//
// Actions are matched exactly (allow, deny, allowlog, denylog); protocols
// case-insensitively (tcp, udp, icmp, ip). A port field is "any", a single
// port, an inclusive range "a-b", or a comma-separated list of ports and
// ranges. Prefixes are opaque to this package.
//
// # Error reporting
//
// Every validation failure carries a closed error code and the (line, column)
// of the offending field. Batch parsing via Parse never short-circuits: all
// lines are attempted and the complete diagnostic list is returned.
//
// # Expansion
//
// Downstream deployment tooling has no notion of port lists or ranges, so
// Ruleset.Expand rewrites each multi-valued rule into one rule per value.
// Only range endpoints are enumerated, never interior ports; see
// Rule.Expand.
package ruleset
