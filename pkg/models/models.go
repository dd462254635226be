package models

import "time"

type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

type DeviceStatus string

const (
	DeviceStatusOnline  DeviceStatus = "online"
	DeviceStatusOffline DeviceStatus = "offline"
)

// RingingStatus is the alert lifecycle of a device as seen by observers.
type RingingStatus string

const (
	RingingIdle    RingingStatus = "idle"
	RingingRinging RingingStatus = "ringing"
	RingingStopped RingingStatus = "stopped"
	RingingFound   RingingStatus = "found"
)

type CommandType string

const (
	CommandRing  CommandType = "ring"
	CommandStop  CommandType = "stop"
	CommandFound CommandType = "found"
)

// CommandStatus is monotonic: pending -> executed|failed, never reversed.
type CommandStatus string

const (
	CommandPending  CommandStatus = "pending"
	CommandExecuted CommandStatus = "executed"
	CommandFailed   CommandStatus = "failed"
)

type User struct {
	UserID       string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	CreatedAt    time.Time
}

type Device struct {
	DeviceID      string        `gorm:"primaryKey"`
	UserID        string        `gorm:"index"`
	Name          string
	Platform      Platform      `gorm:"type:varchar(10);check:platform IN ('ios','android')"`
	LastSeen      time.Time     `gorm:"index"`
	Status        DeviceStatus  `gorm:"type:varchar(10)"`
	RingingStatus RingingStatus `gorm:"type:varchar(10);check:ringing_status IN ('idle','ringing','stopped','found')"`
	CreatedAt     time.Time

	Commands   []Command  `gorm:"foreignKey:DeviceID;references:DeviceID"`
	Activities []Activity `gorm:"foreignKey:DeviceID;references:DeviceID"`
}

type Command struct {
	CommandID  string        `gorm:"primaryKey"`
	DeviceID   string        `gorm:"index"`
	Type       CommandType   `gorm:"type:varchar(10);check:type IN ('ring','stop','found')"`
	Status     CommandStatus `gorm:"type:varchar(10);check:status IN ('pending','executed','failed')"`
	CreatedAt  time.Time
	ExecutedAt *time.Time
}

// Activity is the append-only audit log. DeviceName is denormalized at write
// time so the dashboard can render history after a rename.
type Activity struct {
	ActivityID string      `gorm:"primaryKey"`
	DeviceID   string      `gorm:"index"`
	UserID     string      `gorm:"index"`
	Action     CommandType `gorm:"type:varchar(10)"`
	DeviceName string
	Timestamp  time.Time `gorm:"index"`
}
