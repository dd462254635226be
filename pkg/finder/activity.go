package finder

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"
)

// DefaultActivityLimit caps the dashboard's recent-activity view.
const DefaultActivityLimit = 10

func (f *Finder) logActivity(deviceID, userID string, action models.CommandType, deviceName string) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderActivity),
	)

	activity := models.Activity{
		ActivityID: uuid.NewString(),
		DeviceID:   deviceID,
		UserID:     userID,
		Action:     action,
		DeviceName: deviceName,
		Timestamp:  time.Now(),
	}

	if err := f.Db.Conn.Create(&activity).Error; err != nil {
		return storeErr(err)
	}

	if f.Feed != nil {
		f.Feed.publishActivity(activity)
	}

	logger.Info("Activity logged", zap.Reflect("activity", activity))
	return nil
}

func (f *Finder) recentActivitiesForUser(userID string, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	var activities []models.Activity
	err := f.Db.Conn.
		Where("user_id = ?", userID).
		Order("timestamp desc").
		Limit(limit).
		Find(&activities).Error
	return activities, storeErr(err)
}

type IActivityImpl struct {
	finder *Finder
}

func (ia *IActivityImpl) Log(deviceID, userID string, action models.CommandType, deviceName string) error {
	return ia.finder.logActivity(deviceID, userID, action, deviceName)
}

func (ia *IActivityImpl) RecentForUser(userID string, limit int) ([]models.Activity, error) {
	return ia.finder.recentActivitiesForUser(userID, limit)
}

func (f *Finder) GetIActivity() IActivity {
	return &IActivityImpl{finder: f}
}
