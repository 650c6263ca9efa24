package device

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Platform describes one supported device make and the interface naming
// patterns of each of its models.
type Platform struct {
	Make   string  `yaml:"make"`
	Models []Model `yaml:"models"`
}

// Model is one device model with its valid interface-name patterns.
type Model struct {
	Name       string
	Interfaces []*regexp.Regexp
}

// UnmarshalYAML compiles the interface patterns at decode time so a broken
// platform file fails loudly instead of during validation.
func (m *Model) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name       string   `yaml:"name"`
		Interfaces []string `yaml:"interfaces"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	patterns := make([]*regexp.Regexp, 0, len(raw.Interfaces))
	for _, src := range raw.Interfaces {
		re, err := regexp.Compile(src)
		if err != nil {
			return fmt.Errorf("model %q: invalid interface pattern %q: %w", raw.Name, src, err)
		}
		patterns = append(patterns, re)
	}

	m.Name = raw.Name
	m.Interfaces = patterns
	return nil
}

// ModelPatterns returns the interface patterns for the named model.
func (p *Platform) ModelPatterns(model string) ([]*regexp.Regexp, bool) {
	for _, m := range p.Models {
		if m.Name == model {
			return m.Interfaces, true
		}
	}
	return nil, false
}

// LoadPlatform finds and decodes the platform definition for a make inside
// dir. Files are matched by name: the first .yaml/.yml file whose base name
// contains the make is used.
func LoadPlatform(dir, makeName string) (*Platform, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read platforms directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if !strings.Contains(strings.TrimSuffix(name, ext), makeName) {
			continue
		}
		return parsePlatformFile(filepath.Join(dir, name))
	}

	return nil, &Error{
		Code:   ErrCodeMakeNotSupported,
		Detail: fmt.Sprintf("no platform definition for %q in %s", makeName, dir),
	}
}

func parsePlatformFile(path string) (*Platform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open platform definition: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var p Platform
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: failed to decode platform definition: %w", path, err)
	}
	return &p, nil
}
