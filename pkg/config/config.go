package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration is the top-level ruleset configuration document.
type Configuration struct {
	Ruleset  RulesetSection `yaml:"ruleset"`
	Defaults Defaults       `yaml:"defaults"`
}

// RulesetSection holds the raw rule lines and where they deploy.
type RulesetSection struct {
	// Generic is the ordered list of raw rule lines. Validation and
	// expansion are pkg/ruleset's job.
	Generic []string `yaml:"generic"`

	Deployment DeploymentRules `yaml:"deployment"`
}

// DeploymentRules names the target platform and per-direction settings.
type DeploymentRules struct {
	Platform   string    `yaml:"platform"`
	Model      string    `yaml:"model"`
	DeviceList []string  `yaml:"devicelist"`
	Ingress    Direction `yaml:"ingress"`
	Egress     Direction `yaml:"egress"`
}

// Direction configures one traffic direction on the target devices.
type Direction struct {
	Interfaces []string `yaml:"interfaces"`
	Filters    Filters  `yaml:"filters"`

	// Deployable gates rendering for this direction.
	Deployable bool `yaml:"deployable"`

	// Established adds a stateful match-established term ahead of the
	// default term.
	Established bool `yaml:"established"`

	// Default is the filter's final action, "allow" or "deny".
	Default string `yaml:"default"`

	Transforms Transforms `yaml:"transforms"`
}

// Filters names the prefix lists referenced by this direction.
type Filters struct {
	Src []string `yaml:"src"`
	Dst []string `yaml:"dst"`
}

// Transforms toggles prefix rewriting per side.
type Transforms struct {
	Src bool `yaml:"src"`
	Dst bool `yaml:"dst"`
}

// Defaults carries site-wide conventions.
type Defaults struct {
	// DeviceRegex is the naming convention every devicelist entry must
	// match.
	DeviceRegex string `yaml:"device_regex"`
}

// Load reads and decodes the configuration file at path.
func Load(path string) (*Configuration, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("configuration loaded",
		"path", path,
		"rules", len(cfg.Ruleset.Generic),
		"devices", len(cfg.Ruleset.Deployment.DeviceList))
	return cfg, nil
}

// Parse decodes a configuration document. Decoding is strict: unknown keys
// are rejected so typos surface instead of silently dropping settings.
func Parse(r io.Reader) (*Configuration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var cfg Configuration
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks structural requirements the decoder cannot express.
func (c *Configuration) Validate() error {
	if len(c.Ruleset.Generic) == 0 {
		return fmt.Errorf("ruleset.generic must list at least one rule")
	}
	d := c.Ruleset.Deployment
	if d.Platform == "" {
		return fmt.Errorf("ruleset.deployment.platform is required")
	}
	if d.Model == "" {
		return fmt.Errorf("ruleset.deployment.model is required")
	}
	if len(d.DeviceList) == 0 {
		return fmt.Errorf("ruleset.deployment.devicelist must list at least one device")
	}
	for _, dir := range []struct {
		name string
		d    Direction
	}{{"ingress", d.Ingress}, {"egress", d.Egress}} {
		switch dir.d.Default {
		case "allow", "deny":
		default:
			return fmt.Errorf("ruleset.deployment.%s.default must be 'allow' or 'deny', got %q",
				dir.name, dir.d.Default)
		}
	}
	return nil
}
