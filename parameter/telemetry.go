package parameter

import "time"

// Telemetry feed
const (
	TelemetryPushInterval = 100 * time.Millisecond
	TelemetryWriteTimeout = 2 * time.Second
	TelemetryReadLimit    = 512
)
