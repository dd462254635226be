package finder

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"

	"go.uber.org/mock/gomock"
	"lostfound.dev/device-finder-service/pkg/db"
	"lostfound.dev/device-finder-service/pkg/finder/mocks"
)

func GetMockFinderWithMemorySqliteDialector(t *testing.T, useMockIDevice, useMockICommand, useMockIActivity bool) (
	*gomock.Controller,
	*Finder,
	*mocks.MockIDevice,
	*mocks.MockICommand,
	*mocks.MockIActivity,
) {
	ctrl := gomock.NewController(t)

	mockIDevice := mocks.NewMockIDevice(ctrl)
	mockICommand := mocks.NewMockICommand(ctrl)
	mockIActivity := mocks.NewMockIActivity(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	finderInstance := (&Finder{Db: *dbInstance, Feed: NewFeed()})

	deviceService := finderInstance.GetIDevice()
	if useMockIDevice {
		deviceService = mockIDevice
	}

	commandService := finderInstance.GetICommand()
	if useMockICommand {
		commandService = mockICommand
	}

	activityService := finderInstance.GetIActivity()
	if useMockIActivity {
		activityService = mockIActivity
	}

	finderInstance.WithServices(ServiceOpts{
		Device:   deviceService,
		Command:  commandService,
		Activity: activityService,
	})

	return ctrl, finderInstance, mockIDevice, mockICommand, mockIActivity
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
