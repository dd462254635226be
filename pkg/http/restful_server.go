package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"lostfound.dev/device-finder-service/pkg/auth"
	"lostfound.dev/device-finder-service/pkg/common"
	"lostfound.dev/device-finder-service/pkg/dispatch"
	"lostfound.dev/device-finder-service/pkg/finder"
)

const ctxKeySession = "session"

type RestfulServer struct {
	Server           *gin.Engine
	Core             *finder.Finder
	Auth             *auth.Service
	RateLimiterStore *finder.RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(deviceID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(deviceID)
	}
}

func (rs *RestfulServer) CheckDeviceLimiter(deviceID string) bool {
	limiter := rs.GetLimiter(deviceID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(deviceID string, deviceRate float64, deviceBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(deviceID, rate.Limit(deviceRate), deviceBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	authRoutes := rs.Server.Group("/auth")
	{
		authRoutes.POST("/signup", rs.SignUp)
		authRoutes.POST("/signin", rs.SignIn)
		authRoutes.POST("/signout", rs.SignOut)
		authRoutes.POST("/reset", rs.ResetPassword)
	}

	api := rs.Server.Group("", rs.RequireSession)
	{
		api.GET("/devices", rs.ListDevices)
		api.GET("/activities", rs.GetActivities)
		api.POST("/commands/:command_id/ack", rs.AckCommand)

		devices := api.Group("/devices/:device_id")
		{
			devices.POST("/register", rs.RegisterDevice)
			devices.POST("/heartbeat", rs.PostHeartbeat)
			devices.PATCH("/name", rs.RenameDevice)
			devices.POST("/commands", rs.SendCommand)
			devices.GET("/commands/pending", rs.GetPendingCommands)
			devices.POST("/limiter", rs.PostLimiter)
		}
	}
}

// RequireSession gates everything outside /auth and /healthz behind a valid
// bearer token.
func (rs *RestfulServer) RequireSession(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"error": common.FriendlyMessage(status.Error(codes.Unauthenticated, "missing bearer token"))})
		return
	}

	session, err := rs.Auth.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": common.FriendlyMessage(err)})
		return
	}

	c.Set(ctxKeySession, session)
	c.Next()
}

func sessionFrom(c *gin.Context) *auth.Session {
	if v, ok := c.Get(ctxKeySession); ok {
		if session, ok := v.(*auth.Session); ok {
			return session
		}
	}
	return nil
}

func (rs *RestfulServer) dispatcher(c *gin.Context) *dispatch.Dispatcher {
	return &dispatch.Dispatcher{Core: rs.Core, Session: sessionFrom(c)}
}

func httpStatusOf(err error) int {
	switch status.Code(err) {
	case codes.NotFound:
		return http.StatusNotFound
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.OutOfRange, codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
