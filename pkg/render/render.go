package render

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/netfabric/aclmgr/pkg/config"
	"github.com/netfabric/aclmgr/pkg/device"
	"github.com/netfabric/aclmgr/pkg/ruleset"
)

//go:embed templates/junos.conf.tmpl
var junosTemplate string

// Directions a filter can attach to, and the matching vendor keyword.
const (
	DirectionIngress = "ingress"
	DirectionEgress  = "egress"
)

var attachKeywords = map[string]string{
	DirectionIngress: "input",
	DirectionEgress:  "output",
}

// Renderer renders expanded rulesets into vendor configuration text. Every
// output of one Renderer carries the same generation ID so a deployment can
// be traced back to a single run.
type Renderer struct {
	version      string
	generationID uuid.UUID
	tmpl         *template.Template
}

// New creates a Renderer stamped with the generator version.
func New(version string) (*Renderer, error) {
	tmpl, err := template.New("junos").Funcs(template.FuncMap{
		"portClause":     portClause,
		"protocolClause": protocolClause,
		"thenClauses":    thenClauses,
		"defaultAction":  defaultAction,
	}).Parse(junosTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse vendor template: %w", err)
	}

	return &Renderer{
		version:      version,
		generationID: uuid.New(),
		tmpl:         tmpl,
	}, nil
}

// GenerationID identifies this renderer's run.
func (r *Renderer) GenerationID() uuid.UUID {
	return r.generationID
}

// Input is one render unit: a device, a direction, and the rules to apply.
type Input struct {
	Device      *device.Device
	Direction   string
	Established bool
	Default     string
	Rules       ruleset.Ruleset
}

// Output is one rendered configuration.
type Output struct {
	Device    string
	Direction string
	Filename  string
	Config    string
}

// Render produces configuration text for a single device and direction.
func (r *Renderer) Render(in Input) (Output, error) {
	start := time.Now()

	attach, ok := attachKeywords[in.Direction]
	if !ok {
		return Output{}, fmt.Errorf("unknown direction %q", in.Direction)
	}

	interfaces := in.Device.Paths.Ingress
	if in.Direction == DirectionEgress {
		interfaces = in.Device.Paths.Egress
	}

	shortName, _, _ := strings.Cut(in.Device.Name, ".")
	data := struct {
		Input
		Filter       string
		Attach       string
		Interfaces   []string
		Version      string
		GenerationID string
		GeneratedAt  string
	}{
		Input:        in,
		Filter:       shortName + "-" + in.Direction,
		Attach:       attach,
		Interfaces:   interfaces,
		Version:      r.version,
		GenerationID: r.generationID.String(),
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		renderTotal.WithLabelValues("error").Inc()
		return Output{}, fmt.Errorf("failed to render %s/%s: %w", in.Device.Name, in.Direction, err)
	}

	renderDuration.Observe(time.Since(start).Seconds())
	renderTotal.WithLabelValues("ok").Inc()

	return Output{
		Device:    in.Device.Name,
		Direction: in.Direction,
		Filename:  fmt.Sprintf("%s.%s.conf", in.Device.Name, in.Direction),
		Config:    b.String(),
	}, nil
}

// RenderAll renders every deployable device/direction combination
// concurrently. Output order is deterministic: devices in input order,
// ingress before egress.
func (r *Renderer) RenderAll(ctx context.Context, deployment config.DeploymentRules, devices []*device.Device, rules ruleset.Ruleset) ([]Output, error) {
	type job struct {
		idx int
		in  Input
	}

	var jobs []job
	for _, dev := range devices {
		for _, dir := range []struct {
			name string
			cfg  config.Direction
		}{
			{DirectionIngress, deployment.Ingress},
			{DirectionEgress, deployment.Egress},
		} {
			if !dir.cfg.Deployable {
				slog.Debug("skipping non-deployable direction",
					"device", dev.Name,
					"direction", dir.name)
				continue
			}
			jobs = append(jobs, job{
				idx: len(jobs),
				in: Input{
					Device:      dev,
					Direction:   dir.name,
					Established: dir.cfg.Established,
					Default:     dir.cfg.Default,
					Rules:       rules,
				},
			})
		}
	}

	outputs := make([]Output, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.Render(j.in)
			if err != nil {
				return err
			}
			outputs[j.idx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("rendering complete",
		"generation_id", r.generationID,
		"outputs", len(outputs))
	return outputs, nil
}

// portClause renders the vendor port match for a spec, or "" when the field
// matches any port. A surviving single-entry range uses vendor range syntax.
func portClause(p ruleset.PortSpec) string {
	if p.Kind == ruleset.PortKindAny {
		return ""
	}
	return p.String()
}

// protocolClause reports whether a protocol match line is emitted. "ip"
// means any protocol and gets no match clause.
func protocolClause(p ruleset.Protocol) bool {
	return p != ruleset.ProtocolIP
}

// thenClauses maps a rule action to its vendor then-statements.
func thenClauses(a ruleset.Action) []string {
	switch a {
	case ruleset.ActionAllow:
		return []string{"accept"}
	case ruleset.ActionDeny:
		return []string{"discard"}
	case ruleset.ActionAllowLog:
		return []string{"syslog", "accept"}
	case ruleset.ActionDenyLog:
		return []string{"syslog", "discard"}
	default:
		return nil
	}
}

// defaultAction maps the direction's configured default to a vendor action.
func defaultAction(s string) string {
	if s == "allow" {
		return "accept"
	}
	return "discard"
}
