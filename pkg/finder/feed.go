package finder

import (
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"go.uber.org/zap"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"
)

const (
	topicCommandPrefix  = "finder:commands:"
	topicActivityPrefix = "finder:activities:"
)

// Feed delivers newly written documents to live subscribers. It is
// incremental only: nothing already in the store is ever replayed, so a
// consumer that needs history pairs a subscription with one backlog query.
type Feed struct {
	bus evbus.Bus
}

func NewFeed() *Feed {
	return &Feed{bus: evbus.New()}
}

func (f *Feed) publishCommand(command models.Command) {
	// only pending commands enter the feed; terminal transitions are not
	// subscription events
	if command.Status != models.CommandPending {
		return
	}
	f.bus.Publish(topicCommandPrefix+command.DeviceID, command)
}

func (f *Feed) publishActivity(activity models.Activity) {
	f.bus.Publish(topicActivityPrefix+activity.UserID, activity)
}

// CommandSubscription is a live view of commands addressed to one device.
// The owner must call Cancel when done; a leaked subscription keeps
// receiving in the background and is a defect.
type CommandSubscription struct {
	C      chan models.Command
	cancel func()
	once   sync.Once
}

func (s *CommandSubscription) Cancel() {
	s.once.Do(s.cancel)
}

// SubscribeCommands streams commands created for deviceID from now on.
func (f *Feed) SubscribeCommands(deviceID string) (*CommandSubscription, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameFinderCore,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderFeed),
	)

	sub := &CommandSubscription{C: make(chan models.Command, 16)}
	handler := func(command models.Command) {
		select {
		case sub.C <- command:
		default:
			// consumer is stuck; the command stays pending in the store and
			// the backlog query picks it up
			logger.Warn("Dropping command for slow subscriber",
				zap.String("device_id", deviceID),
				zap.String("command_id", command.CommandID),
			)
		}
	}

	topic := topicCommandPrefix + deviceID
	if err := f.bus.Subscribe(topic, handler); err != nil {
		return nil, err
	}

	sub.cancel = func() {
		if err := f.bus.Unsubscribe(topic, handler); err != nil {
			logger.Warn("Unsubscribe failed", zap.String("topic", topic), zap.Error(err))
		}
		close(sub.C)
	}
	return sub, nil
}

// ActivitySubscription is a live view of a user's audit feed.
type ActivitySubscription struct {
	C      chan models.Activity
	cancel func()
	once   sync.Once
}

func (s *ActivitySubscription) Cancel() {
	s.once.Do(s.cancel)
}

// SubscribeActivities streams activity records logged for userID from now on.
func (f *Feed) SubscribeActivities(userID string) (*ActivitySubscription, error) {
	sub := &ActivitySubscription{C: make(chan models.Activity, 16)}
	handler := func(activity models.Activity) {
		select {
		case sub.C <- activity:
		default:
		}
	}

	topic := topicActivityPrefix + userID
	if err := f.bus.Subscribe(topic, handler); err != nil {
		return nil, err
	}

	sub.cancel = func() {
		_ = f.bus.Unsubscribe(topic, handler)
		close(sub.C)
	}
	return sub, nil
}
