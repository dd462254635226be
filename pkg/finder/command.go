package finder

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"
)

func (f *Finder) createCommand(deviceID string, cmdType models.CommandType) (*models.Command, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderCommand),
	)

	command := models.Command{
		CommandID: uuid.NewString(),
		DeviceID:  deviceID,
		Type:      cmdType,
		Status:    models.CommandPending,
		CreatedAt: time.Now(),
	}

	logger.Info("Creating command", zap.Reflect("command", command))

	if err := f.Db.Conn.Create(&command).Error; err != nil {
		return nil, storeErr(err)
	}

	if f.Feed != nil {
		f.Feed.publishCommand(command)
	}

	logger.Info("Command created",
		zap.String("command_id", command.CommandID),
		zap.String("type", string(command.Type)),
	)
	return &command, nil
}

func (f *Finder) getCommand(commandID string) (*models.Command, error) {
	var command models.Command
	if err := f.Db.Conn.First(&command, "command_id = ?", commandID).Error; err != nil {
		return nil, storeErr(err)
	}
	return &command, nil
}

// pendingFor is the agent's backlog view: only documents still in the
// pending+matching set, oldest first.
func (f *Finder) pendingFor(deviceID string) ([]models.Command, error) {
	var commands []models.Command
	err := f.Db.Conn.
		Where("device_id = ? AND status = ?", deviceID, models.CommandPending).
		Order("created_at asc").
		Find(&commands).Error
	return commands, storeErr(err)
}

// markCommandTerminal performs the one allowed status transition,
// pending -> terminal. Reapplying it to an already-terminal command matches
// zero rows and is a no-op.
func (f *Finder) markCommandTerminal(commandID string, outcome models.CommandStatus) error {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderCommand),
	)

	res := f.Db.Conn.Model(&models.Command{}).
		Where("command_id = ? AND status = ?", commandID, models.CommandPending).
		Updates(map[string]any{
			"status":      outcome,
			"executed_at": time.Now(),
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		logger.Debug("Command already terminal, skipping",
			zap.String("command_id", commandID),
			zap.String("outcome", string(outcome)),
		)
		return nil
	}

	logger.Info("Command finished",
		zap.String("command_id", commandID),
		zap.String("outcome", string(outcome)),
	)
	return nil
}

type ICommandImpl struct {
	finder *Finder
}

func (ic *ICommandImpl) Create(deviceID string, cmdType models.CommandType) (*models.Command, error) {
	return ic.finder.createCommand(deviceID, cmdType)
}

func (ic *ICommandImpl) Get(commandID string) (*models.Command, error) {
	return ic.finder.getCommand(commandID)
}

func (ic *ICommandImpl) PendingFor(deviceID string) ([]models.Command, error) {
	return ic.finder.pendingFor(deviceID)
}

func (ic *ICommandImpl) MarkExecuted(commandID string) error {
	return ic.finder.markCommandTerminal(commandID, models.CommandExecuted)
}

func (ic *ICommandImpl) MarkFailed(commandID string) error {
	return ic.finder.markCommandTerminal(commandID, models.CommandFailed)
}

func (f *Finder) GetICommand() ICommand {
	return &ICommandImpl{finder: f}
}
