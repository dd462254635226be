package finder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"
	"lostfound.dev/device-finder-service/pkg/status"
	_ "lostfound.dev/device-finder-service/pkg/testing"
)

func TestStatusSweeper(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, finderObj, _, _, _ := GetMockFinderWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	stale := registerTestDevice(t, finderObj, uuid.NewString())
	fresh := registerTestDevice(t, finderObj, uuid.NewString())

	err := finderObj.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", stale.DeviceID).
		Update("last_seen", time.Now().Add(-status.OnlineThreshold-time.Minute)).Error
	require.NoError(t, err)

	sweeper, err := finderObj.StartStatusSweeper("@every 100ms")
	require.NoError(t, err)
	defer sweeper.Stop()

	require.Eventually(t, func() bool {
		saved, err := finderObj.Device.Get(stale.DeviceID)
		return err == nil && saved.Status == models.DeviceStatusOffline
	}, 3*time.Second, 50*time.Millisecond, "expected stale device swept offline")

	saved, err := finderObj.Device.Get(fresh.DeviceID)
	require.NoError(t, err)
	assert.Equal(t, models.DeviceStatusOnline, saved.Status)
}

func TestStatusSweeper_BadSpec(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, finderObj, _, _, _ := GetMockFinderWithMemorySqliteDialector(t, false, false, false)
	defer ctrl.Finish()

	_, err := finderObj.StartStatusSweeper("not a schedule")
	assert.Error(t, err)
}
