package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"smarthome-analytics-backend/internal/model"
)

// mockSender records sent notifications instead of hitting push services.
type mockSender struct {
	mu         sync.Mutex
	sent       []string // endpoints
	payloads   []string
	statusCode int
}

func (m *mockSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sub.Endpoint)
	m.payloads = append(m.payloads, string(payload))
	code := m.statusCode
	if code == 0 {
		code = http.StatusCreated
	}
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(""))}, nil
}

var testDBSeq atomic.Int64

func newWorkerTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:workertest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.SecurityEvent{}, &model.PushSubscription{}))
	return db
}

func TestSendAlertsForEvent_SeverityFilter(t *testing.T) {
	db := newWorkerTestDB(t)

	event := model.SecurityEvent{
		UserID:    1,
		Message:   "anomaly detected: off-hours usage - device: Front Door Lock (user: Alice)",
		Severity:  model.SeverityWarning,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&event).Error)

	subs := []model.PushSubscription{
		{Endpoint: "https://push.example/critical-only", P256DH: "k1", Auth: "a1", MinSeverity: model.SeverityCritical},
		{Endpoint: "https://push.example/warnings-too", P256DH: "k2", Auth: "a2", MinSeverity: model.SeverityWarning},
		{Endpoint: "https://push.example/everything", P256DH: "k3", Auth: "a3", MinSeverity: model.SeverityInfo},
	}
	for _, s := range subs {
		require.NoError(t, db.Create(&s).Error)
	}

	sender := &mockSender{}
	wp := NewWorkerPool(1, db, &webpush.Options{})
	wp.sender = sender

	wp.sendAlertsForEvent(context.Background(), event.ID)

	// A warning event must skip the critical-only subscriber.
	assert.ElementsMatch(t, []string{
		"https://push.example/warnings-too",
		"https://push.example/everything",
	}, sender.sent)
	for _, p := range sender.payloads {
		assert.Equal(t, event.Message, p)
	}
}

func TestSendAlertsForEvent_ExpiredSubscriptionDeleted(t *testing.T) {
	db := newWorkerTestDB(t)

	event := model.SecurityEvent{
		UserID:    1,
		Message:   "critical event",
		Severity:  model.SeverityCritical,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&event).Error)

	sub := model.PushSubscription{Endpoint: "https://push.example/stale", P256DH: "k", Auth: "a", MinSeverity: model.SeverityCritical}
	require.NoError(t, db.Create(&sub).Error)

	sender := &mockSender{statusCode: http.StatusGone}
	wp := NewWorkerPool(1, db, &webpush.Options{})
	wp.sender = sender

	wp.sendAlertsForEvent(context.Background(), event.ID)

	var count int64
	db.Model(&model.PushSubscription{}).Count(&count)
	assert.Equal(t, int64(0), count, "410 responses must remove the subscription")
}

func TestWorkerPool_DispatchDrainsJobs(t *testing.T) {
	db := newWorkerTestDB(t)

	event := model.SecurityEvent{
		UserID:    1,
		Message:   "critical event",
		Severity:  model.SeverityCritical,
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&event).Error)

	sub := model.PushSubscription{Endpoint: "https://push.example/live", P256DH: "k", Auth: "a", MinSeverity: model.SeverityCritical}
	require.NoError(t, db.Create(&sub).Error)

	sender := &mockSender{}
	wp := NewWorkerPool(2, db, &webpush.Options{})
	wp.sender = sender

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wp.Start(ctx)

	wp.Dispatch(event.ID)

	assert.Eventually(t, func() bool {
		sender.mu.Lock()
		defer sender.mu.Unlock()
		return len(sender.sent) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
