package device

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// ErrorCode identifies which convention a deployment target violated.
type ErrorCode string

const (
	// ErrCodeMakeNotSupported means no platform definition exists for the
	// configured make.
	ErrCodeMakeNotSupported ErrorCode = "MakeNotSupported"

	// ErrCodeModelNotSupported means the platform definition has no entry
	// for the configured model.
	ErrCodeModelNotSupported ErrorCode = "ModelNotSupported"

	// ErrCodeDeviceNameInvalid means a devicelist entry does not match the
	// site naming convention.
	ErrCodeDeviceNameInvalid ErrorCode = "DeviceNameInvalid"

	// ErrCodeInterfaceInvalid means one or more interfaces do not exist on
	// the configured platform model.
	ErrCodeInterfaceInvalid ErrorCode = "InvalidInterfaceAssignment"
)

// Error is a structured validation failure with a closed code, matched in
// callers via errors.As.
type Error struct {
	Code   ErrorCode
	Detail string
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Detail
}

// Device is a validated deployment target.
type Device struct {
	Name  string `json:"name" yaml:"name"`
	Make  string `json:"make" yaml:"make"`
	Model string `json:"model" yaml:"model"`
	Paths Paths  `json:"paths" yaml:"paths"`
}

// Paths are the validated interface assignments per direction.
type Paths struct {
	Ingress []string `json:"ingress" yaml:"ingress"`
	Egress  []string `json:"egress" yaml:"egress"`
}

// Build validates one deployment target end to end: the device name against
// the site convention, the make against the platforms directory, the model
// against the platform definition, and every interface against the model's
// patterns. Interface checks cover both directions before failing so the
// error names every offender.
func Build(platformsDir, deviceRegex, name, makeName, model string, ingress, egress []string) (*Device, error) {
	nameRE, err := regexp.Compile(deviceRegex)
	if err != nil {
		return nil, fmt.Errorf("invalid device_regex %q: %w", deviceRegex, err)
	}
	if !nameRE.MatchString(name) {
		return nil, &Error{
			Code:   ErrCodeDeviceNameInvalid,
			Detail: fmt.Sprintf("%q does not match naming convention %q", name, deviceRegex),
		}
	}

	platform, err := LoadPlatform(platformsDir, makeName)
	if err != nil {
		return nil, err
	}

	patterns, ok := platform.ModelPatterns(model)
	if !ok {
		return nil, &Error{
			Code:   ErrCodeModelNotSupported,
			Detail: fmt.Sprintf("platform %q has no model %q", makeName, model),
		}
	}

	var offenders []string
	offenders = append(offenders, invalidInterfaces(ingress, patterns)...)
	offenders = append(offenders, invalidInterfaces(egress, patterns)...)
	if len(offenders) > 0 {
		return nil, &Error{
			Code:   ErrCodeInterfaceInvalid,
			Detail: fmt.Sprintf("interfaces do not exist on %s %s: %s", makeName, model, strings.Join(offenders, ", ")),
		}
	}

	slog.Debug("device validated",
		"name", name,
		"make", makeName,
		"model", model,
		"ingress", len(ingress),
		"egress", len(egress))

	return &Device{
		Name:  name,
		Make:  makeName,
		Model: model,
		Paths: Paths{Ingress: ingress, Egress: egress},
	}, nil
}

// invalidInterfaces returns every interface matching none of the patterns,
// preserving input order.
func invalidInterfaces(interfaces []string, patterns []*regexp.Regexp) []string {
	var offenders []string
	for _, iface := range interfaces {
		if !matchesAny(iface, patterns) {
			offenders = append(offenders, iface)
		}
	}
	return offenders
}

func matchesAny(iface string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(iface) {
			return true
		}
	}
	return false
}
