package ui

import "fmt"

// Zone ID constants for bubblezone hit detection.
// These are used both in render paths (zone.Mark) and input paths (zone.Get().InBounds).
const (
	ZoneChatInput    = "zone-chat-input"
	ZoneSendButton   = "zone-send-button"
	ZoneSaveConfig   = "zone-save-config"
	ZoneLogout       = "zone-logout"
	ZoneBackToGrid   = "zone-back-to-grid"
	ZoneIntegrations = "zone-integrations"
)

// AgentCardZoneID returns the zone ID for an agent card by its grid index.
func AgentCardZoneID(idx int) string {
	return fmt.Sprintf("zone-agent-card-%d", idx)
}

// CategoryZoneID returns the zone ID for an integration category row.
func CategoryZoneID(idx int) string {
	return fmt.Sprintf("zone-category-%d", idx)
}

// ProviderZoneID returns the zone ID for a provider option within the
// focused category.
func ProviderZoneID(idx int) string {
	return fmt.Sprintf("zone-provider-%d", idx)
}

// QuickActionZoneID returns the zone ID for a quick action chip.
func QuickActionZoneID(idx int) string {
	return fmt.Sprintf("zone-quick-action-%d", idx)
}
