package bridgetoken

import "strings"

// ClientIDPlaceholder is substituted with the client identifier in preset templates
const ClientIDPlaceholder = "{clientId}"

// Role preset names
const (
	RoleSensor   = "sensor"
	RoleActuator = "actuator"
	RoleAdmin    = "admin"
	RoleMonitor  = "monitor"
	RoleCustom   = "custom"
)

// Preset is a named default permission template for a device role
type Preset struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Publish     []string `json:"publish"`
	Subscribe   []string `json:"subscribe"`
}

// presets is never handed out directly, see Presets and LookupPreset.
var presets = []Preset{
	{
		Name:        RoleSensor,
		Description: "Sensor device - publish telemetry, subscribe to commands",
		Publish:     []string{"telemetry.{clientId}.>", "factory.>"},
		Subscribe:   []string{"commands.{clientId}.>"},
	},
	{
		Name:        RoleActuator,
		Description: "Actuator device - publish status, subscribe to commands",
		Publish:     []string{"status.{clientId}.>", "events.>"},
		Subscribe:   []string{"commands.{clientId}.>"},
	},
	{
		Name:        RoleAdmin,
		Description: "Admin device - full access to all topics",
		Publish:     []string{">"},
		Subscribe:   []string{">"},
	},
	{
		Name:        RoleMonitor,
		Description: "Monitor device - subscribe only, no publish",
		Publish:     []string{},
		Subscribe:   []string{">"},
	},
	{
		Name:        RoleCustom,
		Description: "Custom permissions - specify manually",
		Publish:     []string{},
		Subscribe:   []string{},
	},
}

// Presets returns a copy of all role presets in menu order
func Presets() []Preset {
	out := make([]Preset, len(presets))
	for i, p := range presets {
		out[i] = p.clone()
	}
	return out
}

// LookupPreset returns a copy of the preset registered under role
func LookupPreset(role string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == role {
			return p.clone(), true
		}
	}
	return Preset{}, false
}

// presetFor falls back to the custom preset for unknown roles
func presetFor(role string) Preset {
	if p, ok := LookupPreset(role); ok {
		return p
	}
	p, _ := LookupPreset(RoleCustom)
	return p
}

func (p Preset) clone() Preset {
	p.Publish = append([]string{}, p.Publish...)
	p.Subscribe = append([]string{}, p.Subscribe...)
	return p
}

// ExpandPatterns replaces every ClientIDPlaceholder in patterns with clientID.
// The result has the same order and length as patterns and is never nil.
func ExpandPatterns(patterns []string, clientID string) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = strings.ReplaceAll(p, ClientIDPlaceholder, clientID)
	}
	return out
}

// ResolvePermissions returns the publish and subscribe patterns for a client.
// A non-nil explicit list is used verbatim; a nil one is taken from the role
// preset (custom for unknown roles) and expanded against clientID.
func ResolvePermissions(role string, publish, subscribe []string, clientID string) ([]string, []string) {
	preset := presetFor(role)

	var pub, sub []string
	if publish != nil {
		pub = append([]string{}, publish...)
	} else {
		pub = ExpandPatterns(preset.Publish, clientID)
	}
	if subscribe != nil {
		sub = append([]string{}, subscribe...)
	} else {
		sub = ExpandPatterns(preset.Subscribe, clientID)
	}
	return pub, sub
}
