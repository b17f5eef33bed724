package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"smarthome-analytics-backend/internal/model"
)

// Store defines the read/write contract consumed by the analytics
// engine. CRUD handlers work against DB() directly.
type Store interface {
	DB() *gorm.DB

	ListUsers(ctx context.Context) ([]model.User, error)
	ListDevices(ctx context.Context) ([]model.Device, error)
	ListUsageLogs(ctx context.Context) ([]model.UsageLog, error)

	// Snapshot reads users, devices and logs inside one transaction so
	// every analyzer in a request sees the same point-in-time view.
	Snapshot(ctx context.Context) (*Snapshot, error)

	// AppendSecurityEvents persists all events of one anomaly scan
	// atomically: either every event commits or none do.
	AppendSecurityEvents(ctx context.Context, events []*model.SecurityEvent) error
}

// Snapshot is a consistent point-in-time read of the analytics inputs.
type Snapshot struct {
	Users   []model.User
	Devices []model.Device
	Logs    []model.UsageLog
}

// UserByID builds an id-keyed lookup over the snapshot's users.
func (s *Snapshot) UserByID() map[int64]model.User {
	m := make(map[int64]model.User, len(s.Users))
	for _, u := range s.Users {
		m[u.ID] = u
	}
	return m
}

// DeviceByID builds an id-keyed lookup over the snapshot's devices.
func (s *Snapshot) DeviceByID() map[int64]model.Device {
	m := make(map[int64]model.Device, len(s.Devices))
	for _, d := range s.Devices {
		m[d.ID] = d
	}
	return m
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *gormStore) ListDevices(ctx context.Context) ([]model.Device, error) {
	var devices []model.Device
	if err := s.db.WithContext(ctx).Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func (s *gormStore) ListUsageLogs(ctx context.Context) ([]model.UsageLog, error) {
	var logs []model.UsageLog
	if err := s.db.WithContext(ctx).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list usage logs: %w", err)
	}
	return logs, nil
}

func (s *gormStore) Snapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&snap.Users).Error; err != nil {
			return fmt.Errorf("failed to read users: %w", err)
		}
		if err := tx.Find(&snap.Devices).Error; err != nil {
			return fmt.Errorf("failed to read devices: %w", err)
		}
		if err := tx.Find(&snap.Logs).Error; err != nil {
			return fmt.Errorf("failed to read usage logs: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *gormStore) AppendSecurityEvents(ctx context.Context, events []*model.SecurityEvent) error {
	if len(events) == 0 {
		return nil
	}
	for _, e := range events {
		if !e.Severity.Valid() {
			return fmt.Errorf("refusing to persist event with severity %q", e.Severity)
		}
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range events {
			if err := tx.Create(e).Error; err != nil {
				return fmt.Errorf("failed to append security event for user %d: %w", e.UserID, err)
			}
		}
		return nil
	})
}
