package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var credentialsRequestSchema = z.Struct(z.Shape{
	"Email":    z.String().Required(),
	"Password": z.String().Required(),
})

func (rs *RestfulServer) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := credentialsRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	session, err := rs.Auth.SignUp(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   session.Token,
		"user_id": session.UserID,
		"email":   session.Email,
	})
}

func (rs *RestfulServer) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := credentialsRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	session, err := rs.Auth.SignIn(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   session.Token,
		"user_id": session.UserID,
		"email":   session.Email,
	})
}

func (rs *RestfulServer) SignOut(c *gin.Context) {
	rs.Auth.SignOut()
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type ResetRequest struct {
	Email string `json:"email"`
}

var resetRequestSchema = z.Struct(z.Shape{
	"Email": z.String().Required(),
})

func (rs *RestfulServer) ResetPassword(c *gin.Context) {
	var req ResetRequest
	if err := resetRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Auth.ResetPassword(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type RegisterDeviceRequest struct {
	Name     string `json:"name"`
	Platform string `json:"platform"`
}

var registerDeviceRequestSchema = z.Struct(z.Shape{
	"Name":     z.String().Required(),
	"Platform": z.String().OneOf([]string{"ios", "android"}).Required(),
})

func (rs *RestfulServer) RegisterDevice(c *gin.Context) {
	deviceID := c.Param("device_id")
	session := sessionFrom(c)

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req RegisterDeviceRequest
	if err := registerDeviceRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	// re-registering an installation is allowed only for its owner
	if existing, err := rs.Core.Device.Get(deviceID); err == nil && existing.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to perform this action."})
		return
	}

	err := rs.Core.Device.Register(&models.Device{
		DeviceID: deviceID,
		UserID:   session.UserID,
		Name:     req.Name,
		Platform: models.Platform(req.Platform),
	})
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.Status(http.StatusOK)
}

type HeartbeatRequest struct {
	AlertIdle bool `json:"alert_idle"`
}

var heartbeatRequestSchema = z.Struct(z.Shape{
	"AlertIdle": z.Bool(),
})

func (rs *RestfulServer) PostHeartbeat(c *gin.Context) {
	deviceID := c.Param("device_id")
	session := sessionFrom(c)

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req HeartbeatRequest
	if err := heartbeatRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	device, err := rs.Core.Device.Get(deviceID)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}
	if device.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to perform this action."})
		return
	}

	if err := rs.Core.Device.Heartbeat(deviceID, req.AlertIdle); err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.Status(http.StatusOK)
}

type RenameRequest struct {
	Name string `json:"name"`
}

var renameRequestSchema = z.Struct(z.Shape{
	"Name": z.String().Required(),
})

func (rs *RestfulServer) RenameDevice(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req RenameRequest
	if err := renameRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.dispatcher(c).RenameDevice(deviceID, req.Name); err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.Status(http.StatusOK)
}

type SendCommandRequest struct {
	Type       string `json:"type"`
	DeviceName string `json:"device_name"`
}

var sendCommandRequestSchema = z.Struct(z.Shape{
	"Type":       z.String().OneOf([]string{"ring", "stop", "found"}).Required(),
	"DeviceName": z.String(),
})

func (rs *RestfulServer) SendCommand(c *gin.Context) {
	deviceID := c.Param("device_id")

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req SendCommandRequest
	if err := sendCommandRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	command, err := rs.dispatcher(c).SendCommand(deviceID, models.CommandType(req.Type), req.DeviceName)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, command)
}

func (rs *RestfulServer) GetPendingCommands(c *gin.Context) {
	deviceID := c.Param("device_id")
	session := sessionFrom(c)

	if !rs.CheckDeviceLimiter(deviceID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	device, err := rs.Core.Device.Get(deviceID)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}
	if device.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to perform this action."})
		return
	}

	commands, err := rs.Core.Command.PendingFor(deviceID)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, commands)
}

type AckCommandRequest struct {
	Status string `json:"status"`
}

var ackCommandRequestSchema = z.Struct(z.Shape{
	"Status": z.String().OneOf([]string{"executed", "failed"}).Required(),
})

// AckCommand lets a remote agent report a command outcome. The transition is
// monotonic; acking an already-terminal command changes nothing.
func (rs *RestfulServer) AckCommand(c *gin.Context) {
	commandID := c.Param("command_id")
	session := sessionFrom(c)

	var req AckCommandRequest
	if err := ackCommandRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	command, err := rs.Core.Command.Get(commandID)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}
	device, err := rs.Core.Device.Get(command.DeviceID)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}
	if device.UserID != session.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to perform this action."})
		return
	}

	if req.Status == "executed" {
		err = rs.Core.Command.MarkExecuted(commandID)
	} else {
		err = rs.Core.Command.MarkFailed(commandID)
	}
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	devices, err := rs.dispatcher(c).Devices()
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, devices)
}

func (rs *RestfulServer) GetActivities(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	activities, err := rs.dispatcher(c).RecentActivity(limit)
	if err != nil {
		c.JSON(httpStatusOf(err), gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.JSON(http.StatusOK, activities)
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"Rate":  z.Float64().Required(),
	"Burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	deviceID := c.Param("device_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(deviceID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
