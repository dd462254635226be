package finder

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm/clause"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"
)

// MaxDeviceNameLen bounds display names; longer renames are rejected without
// a store write.
const MaxDeviceNameLen = 50

func (f *Finder) registerDevice(input *models.Device) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderDevice),
	)

	now := time.Now()
	device := models.Device{
		DeviceID:      input.DeviceID,
		UserID:        input.UserID,
		Name:          input.Name,
		Platform:      input.Platform,
		LastSeen:      now,
		Status:        models.DeviceStatusOnline,
		RingingStatus: models.RingingIdle,
		CreatedAt:     now,
	}

	logger.Info("Registering device", zap.Reflect("device", device))

	err := f.Db.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		UpdateAll: true,
	}).Create(&device).Error
	if err != nil {
		return storeErr(err)
	}

	logger.Info("Device registered", zap.String("device_id", device.DeviceID))
	return nil
}

func (f *Finder) getDevice(deviceID string) (*models.Device, error) {
	var device models.Device
	if err := f.Db.Conn.First(&device, "device_id = ?", deviceID).Error; err != nil {
		return nil, storeErr(err)
	}
	return &device, nil
}

func (f *Finder) listDevicesByUser(userID string) ([]models.Device, error) {
	var devices []models.Device
	err := f.Db.Conn.
		Where("user_id = ?", userID).
		Order("last_seen desc").
		Find(&devices).Error
	return devices, storeErr(err)
}

// heartbeat re-asserts liveness. The ringing status is reconciled back to
// idle only while the local alert is not active, so a ring in flight is never
// clobbered.
func (f *Finder) heartbeat(deviceID string, alertIdle bool) error {
	updates := map[string]any{
		"last_seen": time.Now(),
		"status":    models.DeviceStatusOnline,
	}
	if alertIdle {
		updates["ringing_status"] = models.RingingIdle
	}

	res := f.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Updates(updates)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return status.Error(codes.NotFound, "device not registered: "+deviceID)
	}
	return nil
}

// rename validates and writes the name column, and nothing else. Empty,
// oversized, or unchanged names never reach the store.
func (f *Finder) rename(deviceID, newName string) error {
	trimmed := strings.TrimSpace(newName)
	if trimmed == "" {
		return status.Error(codes.OutOfRange, "device name must not be empty")
	}
	if len(trimmed) > MaxDeviceNameLen {
		return status.Error(codes.OutOfRange, "device name must be at most 50 characters")
	}

	device, err := f.getDevice(deviceID)
	if err != nil {
		return err
	}
	if device.Name == trimmed {
		return nil
	}

	err = f.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Update("name", trimmed).Error
	return storeErr(err)
}

func (f *Finder) setRinging(deviceID string, ringing models.RingingStatus) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderDevice),
	)

	res := f.Db.Conn.Model(&models.Device{}).
		Where("device_id = ?", deviceID).
		Update("ringing_status", ringing)
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return status.Error(codes.NotFound, "device not registered: "+deviceID)
	}

	logger.Info("Updated ringing status",
		zap.String("device_id", deviceID),
		zap.String("ringing_status", string(ringing)),
	)
	return nil
}

type IDeviceImpl struct {
	finder *Finder
}

func (id *IDeviceImpl) Register(device *models.Device) error {
	return id.finder.registerDevice(device)
}

func (id *IDeviceImpl) Get(deviceID string) (*models.Device, error) {
	return id.finder.getDevice(deviceID)
}

func (id *IDeviceImpl) ListByUser(userID string) ([]models.Device, error) {
	return id.finder.listDevicesByUser(userID)
}

func (id *IDeviceImpl) Heartbeat(deviceID string, alertIdle bool) error {
	return id.finder.heartbeat(deviceID, alertIdle)
}

func (id *IDeviceImpl) Rename(deviceID, newName string) error {
	return id.finder.rename(deviceID, newName)
}

func (id *IDeviceImpl) SetRinging(deviceID string, ringing models.RingingStatus) error {
	return id.finder.setRinging(deviceID, ringing)
}

func (f *Finder) GetIDevice() IDevice {
	return &IDeviceImpl{finder: f}
}
