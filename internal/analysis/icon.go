package analysis

import (
	"encoding/json"
	"strings"
)

// Icon names a symbol from the fixed set the dashboard can render.
// Unknown keys returned by the model fold to IconSettings instead of
// surviving as arbitrary strings.
type Icon string

const (
	IconSettings Icon = "settings"
	IconCPU      Icon = "cpu"
	IconMemory   Icon = "memory"
	IconGPU      Icon = "gpu"
	IconDisplay  Icon = "display"
	IconNetwork  Icon = "network"
	IconStorage  Icon = "storage"
	IconThermal  Icon = "thermal"
)

var knownIcons = map[Icon]struct{}{
	IconSettings: {},
	IconCPU:      {},
	IconMemory:   {},
	IconGPU:      {},
	IconDisplay:  {},
	IconNetwork:  {},
	IconStorage:  {},
	IconThermal:  {},
}

// ParseIcon maps a raw key to a known icon, defaulting unknown keys.
func ParseIcon(raw string) Icon {
	icon := Icon(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownIcons[icon]; ok {
		return icon
	}
	return IconSettings
}

// UnmarshalJSON folds unknown icon keys to the default at decode time.
func (i *Icon) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = ParseIcon(raw)
	return nil
}
