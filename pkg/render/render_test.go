package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netfabric/aclmgr/pkg/config"
	"github.com/netfabric/aclmgr/pkg/device"
	"github.com/netfabric/aclmgr/pkg/ruleset"
)

func testDevice() *device.Device {
	return &device.Device{
		Name:  "fw01.lab1.example.net",
		Make:  "junos",
		Model: "srx1500",
		Paths: device.Paths{
			Ingress: []string{"ae10"},
			Egress:  []string{"ae20", "xe-0/0/1"},
		},
	}
}

func testRules(t *testing.T) ruleset.Ruleset {
	t.Helper()
	rs, err := ruleset.Parse([]string{
		"allow icmp outside any inside any",
		"deny tcp outside any inside 22",
		"allowlog udp outside any inside 161,162",
	})
	require.NoError(t, err)
	return rs.Expand()
}

func TestRender(t *testing.T) {
	r, err := New("1.2.3")
	require.NoError(t, err)

	out, err := r.Render(Input{
		Device:      testDevice(),
		Direction:   DirectionIngress,
		Established: true,
		Default:     "deny",
		Rules:       testRules(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "fw01.lab1.example.net", out.Device)
	assert.Equal(t, "fw01.lab1.example.net.ingress.conf", out.Filename)

	cfg := out.Config
	assert.Contains(t, cfg, "filter fw01-ingress {")
	assert.Contains(t, cfg, "generated-by: aclmgr 1.2.3")
	assert.Contains(t, cfg, "generation-id: "+r.GenerationID().String())

	// One term per expanded rule: icmp, tcp/22, udp/161, udp/162.
	assert.Contains(t, cfg, "term t0 {")
	assert.Contains(t, cfg, "term t3 {")
	assert.NotContains(t, cfg, "term t4 {")

	assert.Contains(t, cfg, "protocol icmp;")
	assert.Contains(t, cfg, "destination-port 22;")
	assert.Contains(t, cfg, "destination-port 161;")
	assert.Contains(t, cfg, "destination-port 162;")
	assert.Contains(t, cfg, "source-prefix-list outside;")
	assert.Contains(t, cfg, "destination-prefix-list inside;")

	// allowlog emits syslog before accept.
	assert.Contains(t, cfg, "syslog;")

	assert.Contains(t, cfg, "term established {")
	assert.Contains(t, cfg, "tcp-established;")

	// default deny renders as discard.
	assert.Contains(t, cfg, "term default {")
	assert.Contains(t, cfg, "discard;")

	// Ingress filters attach as input on the ingress interfaces only.
	assert.Contains(t, cfg, "ae10 {")
	assert.Contains(t, cfg, "input fw01-ingress;")
	assert.NotContains(t, cfg, "ae20 {")
}

func TestRenderEgressAttachesOutput(t *testing.T) {
	r, err := New("dev")
	require.NoError(t, err)

	out, err := r.Render(Input{
		Device:    testDevice(),
		Direction: DirectionEgress,
		Default:   "allow",
		Rules:     testRules(t),
	})
	require.NoError(t, err)

	assert.Contains(t, out.Config, "output fw01-egress;")
	assert.Contains(t, out.Config, "ae20 {")
	assert.Contains(t, out.Config, "xe-0/0/1 {")
	assert.NotContains(t, out.Config, "term established {")

	// default allow renders as accept in the default term.
	assert.Contains(t, out.Config, "term default {")
}

func TestRenderUnknownDirection(t *testing.T) {
	r, err := New("dev")
	require.NoError(t, err)

	_, err = r.Render(Input{Device: testDevice(), Direction: "sideways"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown direction")
}

func TestRenderAll(t *testing.T) {
	r, err := New("dev")
	require.NoError(t, err)

	deployment := config.DeploymentRules{
		Ingress: config.Direction{Deployable: true, Established: true, Default: "deny"},
		Egress:  config.Direction{Deployable: false, Default: "deny"},
	}
	devices := []*device.Device{
		testDevice(),
		{
			Name:  "fw02.lab1.example.net",
			Make:  "junos",
			Model: "srx1500",
			Paths: device.Paths{Ingress: []string{"ae10"}},
		},
	}

	outputs, err := r.RenderAll(context.Background(), deployment, devices, testRules(t))
	require.NoError(t, err)

	// Egress is not deployable: one output per device, in device order.
	require.Len(t, outputs, 2)
	assert.Equal(t, "fw01.lab1.example.net", outputs[0].Device)
	assert.Equal(t, DirectionIngress, outputs[0].Direction)
	assert.Equal(t, "fw02.lab1.example.net", outputs[1].Device)

	// Every output of one run shares the generation ID.
	for _, out := range outputs {
		assert.Contains(t, out.Config, r.GenerationID().String())
	}
}

func TestRenderAllCancelledContext(t *testing.T) {
	r, err := New("dev")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deployment := config.DeploymentRules{
		Ingress: config.Direction{Deployable: true, Default: "deny"},
	}
	_, err = r.RenderAll(ctx, deployment, []*device.Device{testDevice()}, testRules(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
