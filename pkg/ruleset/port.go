package ruleset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PortRange is one inclusive pair of port bounds. A single port is stored
// as Start == End.
type PortRange struct {
	Start uint16
	End   uint16
}

// MarshalYAML renders the range as a two-element [start, end] sequence.
func (r PortRange) MarshalYAML() (interface{}, error) {
	return []uint16{r.Start, r.End}, nil
}

// MarshalJSON renders the range as a two-element [start, end] array.
func (r PortRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint16{r.Start, r.End})
}

func (r PortRange) String() string {
	if r.Start == r.End {
		return strconv.Itoa(int(r.Start))
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// PortMap is an ordered sequence of inclusive ranges as written by the user.
// Entries are never merged, deduplicated, or sorted: expansion walks them
// positionally.
type PortMap []PortRange

// ParsePortMap parses a port field into ranges. The field is tried as a
// bare port first, then as a comma list, then as a single range. Returned
// errors are FieldError codes (PortInvalid or PortOrderInvalid).
func ParsePortMap(s string) (PortMap, error) {
	if n, err := strconv.ParseUint(s, 10, 16); err == nil {
		return PortMap{{Start: uint16(n), End: uint16(n)}}, nil
	}
	switch {
	case strings.Contains(s, ","):
		return parsePortList(s)
	case strings.Contains(s, "-"):
		r, err := parsePortRange(s)
		if err != nil {
			return nil, err
		}
		return PortMap{r}, nil
	default:
		return nil, PortInvalid
	}
}

func parsePortList(s string) (PortMap, error) {
	items := strings.Split(s, ",")
	m := make(PortMap, 0, len(items))
	for _, item := range items {
		if strings.Contains(item, "-") {
			r, err := parsePortRange(item)
			if err != nil {
				return nil, err
			}
			m = append(m, r)
			continue
		}
		n, err := strconv.ParseUint(item, 10, 16)
		if err != nil {
			return nil, PortInvalid
		}
		m = append(m, PortRange{Start: uint16(n), End: uint16(n)})
	}
	return m, nil
}

func parsePortRange(s string) (PortRange, error) {
	parts := strings.Split(s, "-")
	bounds := make([]uint16, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return PortRange{}, PortInvalid
		}
		bounds = append(bounds, uint16(n))
	}
	if len(bounds) != 2 {
		return PortRange{}, PortInvalid
	}
	if bounds[0] > bounds[1] {
		return PortRange{}, PortOrderInvalid
	}
	return PortRange{Start: bounds[0], End: bounds[1]}, nil
}

// Expandable reports whether the map names more than one discrete value:
// multiple entries, or any entry spanning a range.
func (m PortMap) Expandable() bool {
	if len(m) > 1 {
		return true
	}
	for _, r := range m {
		if r.Start != r.End {
			return true
		}
	}
	return false
}

// endpoints enumerates every range boundary in written order: each entry
// contributes its start, plus its end when the two differ. Interior ports
// are never produced.
func (m PortMap) endpoints() []uint16 {
	out := make([]uint16, 0, 2*len(m))
	for _, r := range m {
		out = append(out, r.Start)
		if r.Start != r.End {
			out = append(out, r.End)
		}
	}
	return out
}

func (m PortMap) String() string {
	items := make([]string, len(m))
	for i, r := range m {
		items[i] = r.String()
	}
	return strings.Join(items, ",")
}

// PortKind discriminates the three shapes a port field can take.
type PortKind string

const (
	// PortKindAny matches every port.
	PortKindAny PortKind = "any"

	// PortKindMap is a parsed list of ranges, pre-expansion.
	PortKindMap PortKind = "map"

	// PortKindPort is a single concrete port, the only multi-capable
	// shape left after expansion.
	PortKindPort PortKind = "port"
)

// PortSpec is a port field value: the sentinel "any", a parsed PortMap, or
// a single expanded port.
type PortSpec struct {
	Kind PortKind
	Map  PortMap // set when Kind == PortKindMap
	Port uint16  // set when Kind == PortKindPort
}

// AnyPort returns the wildcard port spec.
func AnyPort() PortSpec {
	return PortSpec{Kind: PortKindAny}
}

// SinglePort returns a spec naming exactly one port.
func SinglePort(port uint16) PortSpec {
	return PortSpec{Kind: PortKindPort, Port: port}
}

// ParsePortSpec parses one port field: "any", or a PortMap.
func ParsePortSpec(s string) (PortSpec, error) {
	if s == "any" {
		return AnyPort(), nil
	}
	m, err := ParsePortMap(s)
	if err != nil {
		return PortSpec{}, err
	}
	return PortSpec{Kind: PortKindMap, Map: m}, nil
}

// Expandable reports whether expansion would rewrite this field.
func (p PortSpec) Expandable() bool {
	return p.Kind == PortKindMap && p.Map.Expandable()
}

// MarshalYAML renders "any" as a string, a single port as a number, and a
// map as its range pairs.
func (p PortSpec) MarshalYAML() (interface{}, error) {
	switch p.Kind {
	case PortKindAny:
		return "any", nil
	case PortKindPort:
		return p.Port, nil
	default:
		return p.Map, nil
	}
}

// MarshalJSON mirrors MarshalYAML.
func (p PortSpec) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PortKindAny:
		return json.Marshal("any")
	case PortKindPort:
		return json.Marshal(p.Port)
	default:
		return json.Marshal(p.Map)
	}
}

func (p PortSpec) String() string {
	switch p.Kind {
	case PortKindAny:
		return "any"
	case PortKindPort:
		return strconv.Itoa(int(p.Port))
	default:
		return p.Map.String()
	}
}
