package finder

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
	"lostfound.dev/device-finder-service/pkg/db"
	"lostfound.dev/device-finder-service/pkg/models"
)

type IDevice interface {
	Register(device *models.Device) error
	Get(deviceID string) (*models.Device, error)
	ListByUser(userID string) ([]models.Device, error)
	Heartbeat(deviceID string, alertIdle bool) error
	Rename(deviceID string, newName string) error
	SetRinging(deviceID string, ringing models.RingingStatus) error
}

type ICommand interface {
	Create(deviceID string, cmdType models.CommandType) (*models.Command, error)
	Get(commandID string) (*models.Command, error)
	PendingFor(deviceID string) ([]models.Command, error)
	MarkExecuted(commandID string) error
	MarkFailed(commandID string) error
}

type IActivity interface {
	Log(deviceID, userID string, action models.CommandType, deviceName string) error
	RecentForUser(userID string, limit int) ([]models.Activity, error)
}

type Finder struct {
	Db       db.DB
	Feed     *Feed
	Device   IDevice
	Command  ICommand
	Activity IActivity
}

type ServiceOpts struct {
	Device   IDevice
	Command  ICommand
	Activity IActivity
}

func (f *Finder) WithServices(opts ServiceOpts) *Finder {
	if opts.Device != nil {
		f.Device = opts.Device
	}
	if opts.Command != nil {
		f.Command = opts.Command
	}
	if opts.Activity != nil {
		f.Activity = opts.Activity
	}
	return f
}

// storeErr normalizes storage failures into canonical status codes so the
// user-facing error mapping has a stable taxonomy to work from.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
