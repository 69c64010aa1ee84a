package features

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbeauty/salon-booking-service/internal/domain"
	"github.com/glowbeauty/salon-booking-service/internal/service/features/models"
)

type fakeFlagRepo struct {
	flags    []*domain.FeatureFlag
	upserted *domain.FeatureFlag
}

var _ FeatureFlagRepository = (*fakeFlagRepo)(nil)

func (f *fakeFlagRepo) GetAll(_ context.Context) ([]*domain.FeatureFlag, error) {
	return f.flags, nil
}

func (f *fakeFlagRepo) Upsert(_ context.Context, name string, enabled bool, updatedBy *string) (*domain.FeatureFlag, error) {
	f.upserted = &domain.FeatureFlag{
		Name:      name,
		Enabled:   enabled,
		UpdatedBy: updatedBy,
		UpdatedAt: time.Now(),
	}
	return f.upserted, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGetPublic_DefaultsKnownFlagsToDisabled(t *testing.T) {
	svc := NewService(&fakeFlagRepo{}, nopLogger{})

	resp, err := svc.GetPublic(context.Background())
	require.NoError(t, err)

	enabled, ok := resp.Features[domain.FlagBookingCalendarEnabled]
	require.True(t, ok)
	assert.False(t, enabled)
}

func TestGetPublic_ReflectsStoredState(t *testing.T) {
	repo := &fakeFlagRepo{flags: []*domain.FeatureFlag{
		{Name: domain.FlagBookingCalendarEnabled, Enabled: true},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetPublic(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Features[domain.FlagBookingCalendarEnabled])
}

func TestUpdate_KnownFlag(t *testing.T) {
	repo := &fakeFlagRepo{}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateFlagRequest{
		Name:    domain.FlagBookingCalendarEnabled,
		Enabled: true,
		Actor:   "admin@platform",
	})
	require.NoError(t, err)

	assert.True(t, resp.Enabled)
	require.NotNil(t, repo.upserted)
	require.NotNil(t, repo.upserted.UpdatedBy)
	assert.Equal(t, "admin@platform", *repo.upserted.UpdatedBy)
}

func TestUpdate_UnknownFlagRejected(t *testing.T) {
	repo := &fakeFlagRepo{}
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateFlagRequest{
		Name:    "dark_mode",
		Enabled: true,
		Actor:   "admin@platform",
	})
	assert.ErrorIs(t, err, ErrUnknownFlag)
	assert.Nil(t, repo.upserted)
}

func TestUpdate_EmptyNameRejected(t *testing.T) {
	svc := NewService(&fakeFlagRepo{}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateFlagRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
