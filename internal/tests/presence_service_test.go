package tests

import (
	"testing"
	"time"

	"campus-food-backend/internal/domain"
	"campus-food-backend/internal/mocks"
	"campus-food-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHungerLevelAt(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		hour     int
		expected int
	}{
		{name: "off_peak_linear", count: 50, hour: 9, expected: 50},
		{name: "peak_lunch_boost", count: 50, hour: 12, expected: 75},
		{name: "peak_dinner_boost", count: 50, hour: 19, expected: 75},
		{name: "off_peak_capped", count: 120, hour: 9, expected: 100},
		{name: "peak_boost_capped", count: 80, hour: 12, expected: 100},
		{name: "edge_of_lunch_window", count: 40, hour: 14, expected: 60},
		{name: "just_after_lunch_window", count: 40, hour: 15, expected: 40},
		{name: "no_users", count: 0, hour: 12, expected: 0},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			now := time.Date(2024, 3, 1, testCase.hour, 30, 0, 0, time.UTC)
			assert.Equal(t, testCase.expected, service.HungerLevelAt(testCase.count, now))
		})
	}
}

func TestPresenceService_Heartbeat(t *testing.T) {
	repository := mocks.NewPresenceRepository(t)
	svc := service.NewPresenceService(repository)

	t.Run("error_missing_user_id", func(t *testing.T) {
		err := svc.Heartbeat(domain.ActiveUser{})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("success_sets_defaults", func(t *testing.T) {
		repository.On("UpsertActiveUser", mock.MatchedBy(func(user domain.ActiveUser) bool {
			return user.UserID == "u1" &&
				user.DeviceInfo.Type == "mobile" &&
				!user.LastActivity.IsZero()
		})).Return(nil).Once()

		err := svc.Heartbeat(domain.ActiveUser{UserID: "u1"})
		assert.NoError(t, err)
	})

	t.Run("success_keeps_supplied_device", func(t *testing.T) {
		repository.On("UpsertActiveUser", mock.MatchedBy(func(user domain.ActiveUser) bool {
			return user.DeviceInfo.Type == "desktop"
		})).Return(nil).Once()

		err := svc.Heartbeat(domain.ActiveUser{
			UserID:     "u2",
			DeviceInfo: domain.DeviceInfo{Type: "desktop"},
		})
		assert.NoError(t, err)
	})
}

func TestPresenceService_HungerLevel(t *testing.T) {
	repository := mocks.NewPresenceRepository(t)
	svc := service.NewPresenceService(repository)

	repository.On("CountActive", mock.Anything).Return(50, nil).Once()
	repository.On("CountOrdering", mock.Anything).Return(12, nil).Once()

	level, err := svc.HungerLevel()
	assert.NoError(t, err)
	assert.Equal(t, 50, level.ActiveUsers)
	assert.Equal(t, 12, level.OrderingUsers)
	assert.Equal(t, service.HungerLevelAt(50, time.Now().UTC()), level.HungerLevel)
}

func TestPresenceService_Stats(t *testing.T) {
	repository := mocks.NewPresenceRepository(t)
	svc := service.NewPresenceService(repository)

	repository.On("ListActive", mock.Anything).Return([]domain.ActiveUser{
		{UserID: "u1", IsOrdering: true, CurrentStore: "Campus Cafe",
			DeviceInfo: domain.DeviceInfo{Type: "mobile"}},
		{UserID: "u2", CurrentStore: "Campus Cafe",
			DeviceInfo: domain.DeviceInfo{Type: "desktop"}},
		{UserID: "u3"},
	}, nil).Once()

	stats, err := svc.Stats()
	assert.NoError(t, err)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, 1, stats.OrderingUsers)
	assert.Equal(t, 2, stats.ByStore["Campus Cafe"])

	devices := map[string]int{}
	for _, d := range stats.ByDevice {
		devices[d.Device] = d.Count
	}
	assert.Equal(t, 1, devices["mobile"])
	assert.Equal(t, 1, devices["desktop"])
	assert.Equal(t, 1, devices["unknown"])
}

func TestPresenceService_UpdateActivity(t *testing.T) {
	repository := mocks.NewPresenceRepository(t)
	svc := service.NewPresenceService(repository)

	fields := map[string]interface{}{"is_ordering": true}
	repository.On("MergeActivity", "u1", fields, mock.Anything).Return(nil).Once()

	assert.NoError(t, svc.UpdateActivity("u1", fields))
}
