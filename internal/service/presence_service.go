package service

import (
	"fmt"
	"time"

	"campus-food-backend/internal/domain"
)

// activeWindow is the liveness predicate: a record counts as active when
// its last_activity falls within the last 5 minutes, evaluated at query
// time. Stale records are never evicted in the background.
const activeWindow = 5 * time.Minute

type PresenceService struct {
	repo PresenceRepository
}

func NewPresenceService(repo PresenceRepository) *PresenceService {
	return &PresenceService{repo: repo}
}

// HungerLevelAt derives the 0-100 campus demand signal from an active
// user count and the hour of day. Peak windows are 11-14 and 18-21
// inclusive.
func HungerLevelAt(activeCount int, now time.Time) int {
	hour := now.Hour()
	isPeak := (hour >= 11 && hour <= 14) || (hour >= 18 && hour <= 21)

	base := float64(activeCount) / 100 * 100
	if base > 100 {
		base = 100
	}
	if isPeak {
		base = base * 1.5
		if base > 100 {
			base = 100
		}
	}
	return int(base)
}

// Heartbeat fully replaces the record for the user id; two heartbeats
// for one user leave exactly one document.
func (s *PresenceService) Heartbeat(user domain.ActiveUser) error {
	if user.UserID == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	user.Timestamp = now
	user.LastActivity = now
	if user.DeviceInfo.Type == "" {
		user.DeviceInfo.Type = "mobile"
	}
	return s.repo.UpsertActiveUser(user)
}

// UpdateActivity merges the supplied fields into an existing record and
// refreshes last_activity. Unlike Heartbeat it never creates a record.
func (s *PresenceService) UpdateActivity(userID string, fields map[string]interface{}) error {
	return s.repo.MergeActivity(userID, fields, time.Now().UTC())
}

func (s *PresenceService) Remove(userID string) error {
	return s.repo.DeleteActiveUser(userID)
}

func (s *PresenceService) ActiveCount() (int, error) {
	return s.repo.CountActive(time.Now().UTC().Add(-activeWindow))
}

func (s *PresenceService) OrderingCount() (int, error) {
	return s.repo.CountOrdering(time.Now().UTC().Add(-activeWindow))
}

func (s *PresenceService) HungerLevel() (*domain.HungerLevel, error) {
	now := time.Now().UTC()
	since := now.Add(-activeWindow)

	active, err := s.repo.CountActive(since)
	if err != nil {
		return nil, err
	}
	ordering, err := s.repo.CountOrdering(since)
	if err != nil {
		return nil, err
	}

	return &domain.HungerLevel{
		HungerLevel:   HungerLevelAt(active, now),
		ActiveUsers:   active,
		OrderingUsers: ordering,
	}, nil
}

func (s *PresenceService) Stats() (*domain.ActiveUserStats, error) {
	now := time.Now().UTC()
	users, err := s.repo.ListActive(now.Add(-activeWindow))
	if err != nil {
		return nil, err
	}

	byStore := map[string]int{}
	byDevice := map[string]int{}
	ordering := 0

	for _, u := range users {
		if u.IsOrdering {
			ordering++
		}
		if u.CurrentStore != "" {
			byStore[u.CurrentStore]++
		}
		device := u.DeviceInfo.Type
		if device == "" {
			device = "unknown"
		}
		byDevice[device]++
	}

	devices := make([]domain.DeviceCount, 0, len(byDevice))
	for device, count := range byDevice {
		devices = append(devices, domain.DeviceCount{Device: device, Count: count})
	}

	return &domain.ActiveUserStats{
		ActiveUsers:   len(users),
		OrderingUsers: ordering,
		HungerLevel:   HungerLevelAt(len(users), now),
		ByStore:       byStore,
		ByDevice:      devices,
		Timestamp:     now,
	}, nil
}

var _ PresenceServiceInterface = (*PresenceService)(nil)
