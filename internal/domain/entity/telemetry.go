package entity

// TelemetryEvent is an analytics event emitted by the application.
type TelemetryEvent struct {
	Category string `json:"category"`
	Action   string `json:"action"`
	Label    string `json:"label"`
}

// ChainSwitchEvent builds the event emitted after a successful network switch.
func ChainSwitchEvent(chainName string) TelemetryEvent {
	return TelemetryEvent{Category: "Chain", Action: "Switch", Label: chainName}
}
