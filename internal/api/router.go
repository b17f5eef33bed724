package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"smarthome-analytics-backend/config"
	"smarthome-analytics-backend/internal/analytics"
	"smarthome-analytics-backend/internal/mw"
	"smarthome-analytics-backend/internal/notification"
	"smarthome-analytics-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, alertPool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	db := s.DB()
	rules := analytics.NewRuleSet(cfg.Anomaly.OffHours, cfg.Anomaly.WatchedDeviceTypes, cfg.Anomaly.LongSession)
	handler := NewHandler(s, webpushOptions, rules, alertPool)

	// Initialize middleware
	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/users", CreateUser(db))
		api.GET("/users", ListUsers(db))
		api.PUT("/users/:user_id", UpdateUser(db))
		api.DELETE("/users/:user_id", DeleteUser(db))

		api.POST("/devices", CreateDevice(db))
		api.GET("/devices", ListDevices(db))
		api.PUT("/devices/:device_id", UpdateDevice(db))
		api.DELETE("/devices/:device_id", DeleteDevice(db))

		api.POST("/usagelogs", CreateUsageLog(db))
		api.GET("/usagelogs", ListUsageLogs(db))
		api.PUT("/usagelogs/:log_id", UpdateUsageLog(db))
		api.DELETE("/usagelogs/:log_id", DeleteUsageLog(db))

		api.POST("/securityevents", CreateSecurityEvent(db))
		api.GET("/securityevents", ListSecurityEvents(db))
		api.DELETE("/securityevents/:event_id", DeleteSecurityEvent(db))

		api.POST("/feedbacks", CreateFeedback(db))
		api.GET("/feedbacks", ListFeedbacks(db))
		api.PUT("/feedbacks/:feedback_id", UpdateFeedback(db))
		api.DELETE("/feedbacks/:feedback_id", DeleteFeedback(db))

		// Analytics endpoints recompute over the full log set; cache the
		// read-only ones. The alarm check persists events, so it is a POST
		// and never cached.
		api.GET("/analysis/device-usage", caching, handler.GetDeviceUsage)
		api.GET("/analysis/co-usage", caching, handler.GetCoUsage)
		api.GET("/analysis/area-vs-usage", caching, handler.GetAreaVsUsage)
		api.POST("/analysis/alarm-check", handler.RunAlarmCheck)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
