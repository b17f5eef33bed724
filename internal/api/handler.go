package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"smarthome-analytics-backend/internal/analytics"
	"smarthome-analytics-backend/internal/notification"
	"smarthome-analytics-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	rules   analytics.RuleSet
	alerts  *notification.WorkerPool
}

// NewHandler creates a new API handler. alertPool may be nil when push
// delivery is not configured.
func NewHandler(s store.Store, webpushOptions *webpush.Options, rules analytics.RuleSet, alertPool *notification.WorkerPool) *Handler {
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		rules:   rules,
		alerts:  alertPool,
	}
}
