// Package agent runs on the protected device: it registers the device,
// listens for pending commands addressed to it, drives the local alert, and
// heartbeats liveness back to the store.
package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"lostfound.dev/device-finder-service/pkg/auth"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/finder"
	"lostfound.dev/device-finder-service/pkg/models"
)

// HeartbeatInterval is how often the agent re-asserts liveness. It is
// deliberately independent of status.OnlineThreshold; the 4x margin is a
// tunable, not an invariant.
const HeartbeatInterval = 30 * time.Second

// AlertState is the in-memory alert lifecycle the device user observes. It
// is narrower than the persisted ringing status: stopped/found only exist in
// the store.
type AlertState string

const (
	AlertIdle     AlertState = "idle"
	AlertRinging  AlertState = "ringing"
	AlertStopping AlertState = "stopping"
)

type Agent struct {
	Core     *finder.Finder
	Session  *auth.Session
	IDs      *IDStore
	Alerter  Alerter
	Name     string
	Platform models.Platform

	mu          sync.Mutex
	deviceID    string
	state       AlertState
	lastError   string
	lastCommand *models.Command
	seen        map[string]struct{}
	stop        context.CancelFunc
	done        chan struct{}
}

func (a *Agent) logger() *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameDeviceAgent,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderCommand),
	)
}

// Start registers the device and begins listening for commands and sending
// heartbeats. It requires a signed-in session; command listening never starts
// anonymously. Start is a no-op when the agent is already running.
func (a *Agent) Start(ctx context.Context) error {
	if a.Session == nil {
		return status.Error(codes.Unauthenticated, "sign in before starting the command listener")
	}
	if a.Core == nil || a.Core.Feed == nil {
		return status.Error(codes.FailedPrecondition, "command feed not configured")
	}
	if a.Alerter == nil {
		a.Alerter = &LogAlerter{}
	}

	a.mu.Lock()
	if a.stop != nil {
		a.mu.Unlock()
		return nil
	}
	if a.IDs != nil {
		a.deviceID = a.IDs.Load()
	} else if a.deviceID == "" {
		a.deviceID = GenerateDeviceID()
	}
	a.state = AlertIdle
	a.seen = make(map[string]struct{})
	a.done = make(chan struct{})
	deviceID := a.deviceID
	a.mu.Unlock()

	err := a.Core.Device.Register(&models.Device{
		DeviceID: deviceID,
		UserID:   a.Session.UserID,
		Name:     a.Name,
		Platform: a.Platform,
	})
	if err != nil {
		a.setLastError(common.HandleError(err, "device registration"))
		return err
	}

	// subscribe before draining the backlog so no command falls between the
	// two; duplicates are filtered by command id
	sub, err := a.Core.Feed.SubscribeCommands(deviceID)
	if err != nil {
		return err
	}

	backlog, err := a.Core.Command.PendingFor(deviceID)
	if err != nil {
		a.logger().Warn("Could not read pending backlog", zap.Error(err))
	}
	for _, command := range backlog {
		_ = a.HandleCommand(command)
	}

	a.heartbeat()

	runCtx, cancel := context.WithCancel(ctx)
	a.mu.Lock()
	a.stop = cancel
	a.mu.Unlock()

	go a.run(runCtx, sub)

	a.logger().Info("Agent started",
		zap.String("device_id", deviceID),
		zap.String("user_id", a.Session.UserID),
	)
	return nil
}

// Stop tears down the command subscription and heartbeat. Safe to call when
// not running.
func (a *Agent) Stop() {
	a.mu.Lock()
	stop := a.stop
	done := a.done
	a.stop = nil
	a.mu.Unlock()

	if stop != nil {
		stop()
		<-done
		a.logger().Info("Agent stopped", zap.String("device_id", a.DeviceID()))
	}
}

// BindSessions starts the agent whenever a signed-in session appears on the
// channel and stops it on sign-out. The channel comes from
// auth.Service.Watch.
func (a *Agent) BindSessions(ctx context.Context, sessions <-chan *auth.Session) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				a.Stop()
				return
			case session, ok := <-sessions:
				if !ok {
					a.Stop()
					return
				}
				if session != nil {
					a.Session = session
					if err := a.Start(ctx); err != nil {
						a.logger().Error("Agent start failed", zap.Error(err))
					}
				} else {
					a.Stop()
				}
			}
		}
	}()
}

func (a *Agent) run(ctx context.Context, sub *finder.CommandSubscription) {
	defer close(a.done)
	defer sub.Cancel()

	ticker := time.NewTicker(HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case command, ok := <-sub.C:
			if !ok {
				return
			}
			_ = a.HandleCommand(command)
		case <-ticker.C:
			a.heartbeat()
		}
	}
}

// HandleCommand applies one command to the local alert and reports the
// outcome. Every command reaches a terminal status: executed on success,
// failed when the alert subsystem or the store write errors out. A command
// id seen before is a no-op.
func (a *Agent) HandleCommand(command models.Command) error {
	logger := a.logger()

	a.mu.Lock()
	if _, dup := a.seen[command.CommandID]; dup {
		a.mu.Unlock()
		return nil
	}
	if a.seen == nil {
		a.seen = make(map[string]struct{})
	}
	a.seen[command.CommandID] = struct{}{}
	record := command
	a.lastCommand = &record
	deviceID := a.deviceID
	a.mu.Unlock()

	logger.Info("Received command",
		zap.String("command_id", command.CommandID),
		zap.String("type", string(command.Type)),
	)

	switch command.Type {
	case models.CommandRing:
		a.setState(AlertRinging)
		if err := a.Alerter.Start(); err != nil {
			return a.failCommand(command, err)
		}
		if err := a.Core.Device.SetRinging(deviceID, models.RingingRinging); err != nil {
			return a.failCommand(command, err)
		}
		if err := a.Core.Command.MarkExecuted(command.CommandID); err != nil {
			return a.failCommand(command, err)
		}

	case models.CommandStop:
		a.setState(AlertStopping)
		if err := a.Alerter.Stop(); err != nil {
			return a.failCommand(command, err)
		}
		if err := a.Core.Device.SetRinging(deviceID, models.RingingStopped); err != nil {
			return a.failCommand(command, err)
		}
		if err := a.Core.Command.MarkExecuted(command.CommandID); err != nil {
			return a.failCommand(command, err)
		}
		a.setState(AlertIdle)

	case models.CommandFound:
		a.setState(AlertStopping)
		if err := a.Alerter.Stop(); err != nil {
			return a.failCommand(command, err)
		}
		if err := a.Core.Device.SetRinging(deviceID, models.RingingFound); err != nil {
			return a.failCommand(command, err)
		}
		if err := a.Core.Command.MarkExecuted(command.CommandID); err != nil {
			return a.failCommand(command, err)
		}
		a.setState(AlertIdle)

	default:
		return a.failCommand(command, fmt.Errorf("unknown command type %q", command.Type))
	}

	logger.Info("Command executed",
		zap.String("command_id", command.CommandID),
		zap.String("type", string(command.Type)),
	)
	return nil
}

// ManualStop is the device user force-stopping an active alert locally. It
// has the same side effects as a found command without consuming one.
func (a *Agent) ManualStop() error {
	a.setState(AlertStopping)
	if err := a.Alerter.Stop(); err != nil {
		a.setState(AlertIdle)
		a.setLastError(common.HandleError(err, "stopping alert"))
		return err
	}
	if err := a.Core.Device.SetRinging(a.DeviceID(), models.RingingFound); err != nil {
		a.setState(AlertIdle)
		a.setLastError(common.HandleError(err, "stopping alert"))
		return err
	}
	a.setState(AlertIdle)
	return nil
}

// Heartbeat writes last_seen/online and, only while the local alert is idle,
// reconciles the persisted ringing status back to idle. Failures are logged
// and swallowed; the next tick retries implicitly.
func (a *Agent) heartbeat() {
	logger := common.GetLoggerWith(
		common.LoggerNameDeviceAgent,
		zap.String(common.LoggerFieldFinderCategory, common.LoggerCategoryFinderHeartbeat),
	)

	alertIdle := a.State() == AlertIdle && !a.Alerter.Playing()
	if err := a.Core.Device.Heartbeat(a.DeviceID(), alertIdle); err != nil {
		logger.Warn("Heartbeat failed", zap.Error(err))
	}
}

func (a *Agent) failCommand(command models.Command, cause error) error {
	a.logger().Error("Command handling failed",
		zap.String("command_id", command.CommandID),
		zap.String("type", string(command.Type)),
		zap.Error(cause),
	)

	if err := a.Core.Command.MarkFailed(command.CommandID); err != nil {
		a.logger().Warn("Could not mark command failed",
			zap.String("command_id", command.CommandID),
			zap.Error(err),
		)
	}

	// never leave the UI showing a stuck ringing indicator
	a.setState(AlertIdle)
	a.setLastError(common.FriendlyMessage(cause))
	return cause
}

func (a *Agent) DeviceID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deviceID
}

func (a *Agent) State() AlertState {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == "" {
		return AlertIdle
	}
	return a.state
}

// LastError is the most recent user-facing error message, empty when none.
func (a *Agent) LastError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastError
}

func (a *Agent) LastCommand() *models.Command {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastCommand
}

func (a *Agent) setState(state AlertState) {
	a.mu.Lock()
	a.state = state
	a.mu.Unlock()
}

func (a *Agent) setLastError(msg string) {
	a.mu.Lock()
	a.lastError = msg
	a.mu.Unlock()
}
