package agent

import (
	"sync"

	"lostfound.dev/device-finder-service/pkg/common"
)

// Alerter is the device's local alert subsystem: a looping full-volume sound
// plus whatever notification the platform shows. It is a black box to the
// agent; failures degrade gracefully and never leave a command pending.
type Alerter interface {
	// Start begins the looping alert at maximum volume.
	Start() error
	// Stop silences the alert. Stopping an idle alerter is a no-op.
	Stop() error
	// Playing reports whether the alert is currently sounding.
	Playing() bool
}

// LogAlerter stands in when no audio backend is wired up; it only records
// transitions in the log, so a ring command still reaches a terminal status.
type LogAlerter struct {
	mu      sync.Mutex
	playing bool
}

func (l *LogAlerter) Start() error {
	l.mu.Lock()
	l.playing = true
	l.mu.Unlock()
	common.GetLoggerWith(common.LoggerNameDeviceAgent).Info("ALERT: ring active, looping at max volume")
	return nil
}

func (l *LogAlerter) Stop() error {
	l.mu.Lock()
	wasPlaying := l.playing
	l.playing = false
	l.mu.Unlock()
	if wasPlaying {
		common.GetLoggerWith(common.LoggerNameDeviceAgent).Info("ALERT: stopped")
	}
	return nil
}

func (l *LogAlerter) Playing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.playing
}
