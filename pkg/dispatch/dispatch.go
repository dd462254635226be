// Package dispatch is the dashboard side: it issues commands to devices the
// signed-in user owns and reads back device and activity state for display.
package dispatch

import (
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"lostfound.dev/device-finder-service/pkg/auth"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/finder"
	"lostfound.dev/device-finder-service/pkg/models"
	devstatus "lostfound.dev/device-finder-service/pkg/status"
)

type Dispatcher struct {
	Core    *finder.Finder
	Session *auth.Session
}

func (d *Dispatcher) logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameDispatcher)
}

func (d *Dispatcher) requireSession() error {
	if d.Session == nil {
		return status.Error(codes.Unauthenticated, "user not authenticated")
	}
	return nil
}

// ownedDevice gates every device-scoped operation on ownership.
func (d *Dispatcher) ownedDevice(deviceID string) (*models.Device, error) {
	device, err := d.Core.Device.Get(deviceID)
	if err != nil {
		return nil, err
	}
	if device.UserID != d.Session.UserID {
		return nil, status.Error(codes.PermissionDenied, "device belongs to another user")
	}
	return device, nil
}

// SendCommand writes exactly one pending command and one best-effort activity
// record attributing it. The activity write never rolls back or retries the
// command; bursts are not coalesced.
func (d *Dispatcher) SendCommand(deviceID string, cmdType models.CommandType, deviceName string) (*models.Command, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	device, err := d.ownedDevice(deviceID)
	if err != nil {
		return nil, err
	}
	if deviceName == "" {
		deviceName = device.Name
	}

	command, err := d.Core.Command.Create(deviceID, cmdType)
	if err != nil {
		return nil, err
	}

	if err := d.Core.Activity.Log(deviceID, d.Session.UserID, cmdType, deviceName); err != nil {
		d.logger().Warn("Activity log failed, command stands",
			zap.String("command_id", command.CommandID),
			zap.Error(err),
		)
	}
	return command, nil
}

// RenameDevice writes the name column only; validation lives in the core so
// every caller shares it.
func (d *Dispatcher) RenameDevice(deviceID, newName string) error {
	if err := d.requireSession(); err != nil {
		return err
	}
	if _, err := d.ownedDevice(deviceID); err != nil {
		return err
	}
	return d.Core.Device.Rename(deviceID, newName)
}

// DeviceView is a device annotated with liveness derived at read time; the
// stored status column is advisory only.
type DeviceView struct {
	models.Device
	Online       bool   `json:"online"`
	LastSeenText string `json:"last_seen_text"`
}

// Devices lists the user's devices, most recently seen first, with liveness
// evaluated against the current wall clock.
func (d *Dispatcher) Devices() ([]DeviceView, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	devices, err := d.Core.Device.ListByUser(d.Session.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return common.Mapper(devices, func(device models.Device) DeviceView {
		return DeviceView{
			Device:       device,
			Online:       devstatus.IsOnline(now, device.LastSeen),
			LastSeenText: devstatus.TimeSince(now, device.LastSeen),
		}
	}), nil
}

// RecentActivity reads the user's audit trail, newest first.
func (d *Dispatcher) RecentActivity(limit int) ([]models.Activity, error) {
	if err := d.requireSession(); err != nil {
		return nil, err
	}
	return d.Core.Activity.RecentForUser(d.Session.UserID, limit)
}
