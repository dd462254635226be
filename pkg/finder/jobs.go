package finder

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"
	"lostfound.dev/device-finder-service/pkg/status"
)

// DefaultSweepSpec matches the agent heartbeat cadence.
const DefaultSweepSpec = "@every 30s"

// StartStatusSweeper runs a periodic job that flips the stored advisory
// status to offline once a device's heartbeat goes quiet past the liveness
// threshold. Displays still derive liveness from last_seen at read time; the
// sweeper only keeps the stored column from staying "online" forever.
func (f *Finder) StartStatusSweeper(spec string) (*cron.Cron, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderSweeper),
	)

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		cutoff := time.Now().Add(-status.OnlineThreshold)
		res := f.Db.Conn.Model(&models.Device{}).
			Where("status = ? AND last_seen < ?", models.DeviceStatusOnline, cutoff).
			Update("status", models.DeviceStatusOffline)
		if res.Error != nil {
			logger.Warn("Status sweep failed", zap.Error(res.Error))
			return
		}
		if res.RowsAffected > 0 {
			logger.Info("Marked stale devices offline", zap.Int64("count", res.RowsAffected))
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("Status sweeper started", zap.String("spec", spec))
	return c, nil
}
