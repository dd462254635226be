// Package status derives online/offline liveness and a human-readable age
// from a device's last-seen timestamp. Everything here is a pure function of
// (now, lastSeen); consumers re-evaluate on their own tick since the answer
// drifts with the wall clock.
package status

import (
	"fmt"
	"time"

	"lostfound.dev/device-finder-service/pkg/models"
)

// OnlineThreshold is the maximum silence before a device counts as offline.
// The agent heartbeats every 30s, so 2 minutes absorbs a few dropped ticks.
const OnlineThreshold = 2 * time.Minute

// IsOnline reports whether a device seen at lastSeen counts as online at now.
// Exactly OnlineThreshold of silence is already offline.
func IsOnline(now, lastSeen time.Time) bool {
	return now.Sub(lastSeen) < OnlineThreshold
}

// Of classifies lastSeen into the coarse online/offline status.
func Of(now, lastSeen time.Time) models.DeviceStatus {
	if IsOnline(now, lastSeen) {
		return models.DeviceStatusOnline
	}
	return models.DeviceStatusOffline
}

// TimeSince renders the elapsed time since lastSeen for display. Counts are
// truncated toward zero and pluralized only above one.
func TimeSince(now, lastSeen time.Time) string {
	seconds := int64(now.Sub(lastSeen).Seconds())
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case seconds < 60:
		return "Just now"
	case minutes < 60:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case hours < 24:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case days < 7:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	default:
		return lastSeen.Format("1/2/2006")
	}
}

func plural(n int64) string {
	if n > 1 {
		return "s"
	}
	return ""
}
