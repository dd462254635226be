package agent

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lostfound.dev/device-finder-service/pkg/common"
)

// IDStore persists the one device identifier for this installation: read on
// startup, written once on first run, stable across restarts and
// sign-out/sign-in cycles.
type IDStore struct {
	Path string
}

// GenerateDeviceID mints an id in the installed-device namespace.
func GenerateDeviceID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("device_%s_%s", ts, random)
}

// Load returns the persisted device id, minting and persisting one on first
// run. If the file cannot be written the id is session-only; that is logged
// and not an error.
func (s *IDStore) Load() string {
	logger := common.GetLoggerWith(common.LoggerNameDeviceAgent)

	if raw, err := os.ReadFile(s.Path); err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id
		}
	}

	id := GenerateDeviceID()
	if err := os.WriteFile(s.Path, []byte(id+"\n"), 0o600); err != nil {
		logger.Warn("Could not persist device id, using session-only id",
			zap.String("path", s.Path),
			zap.Error(err),
		)
	}
	return id
}

// Clear erases the persisted id, for reset and testing.
func (s *IDStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
