package control

import "sync/atomic"

// debugEvents controls whether every pointer message is logged.
var debugEvents atomic.Bool

// SetDebugLogging enables/disables verbose pointer logs.
func SetDebugLogging(enabled bool) {
	debugEvents.Store(enabled)
}

// debugEnabled reports whether pointer logs are enabled.
func debugEnabled() bool {
	return debugEvents.Load()
}
