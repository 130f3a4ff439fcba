package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jemin1834/orders-prediction/internal/models"
	services "github.com/jemin1834/orders-prediction/internal/services/preference"
)

// Мок для PreferenceRepository
type PreferenceRepoMock struct {
	mock.Mock
}

func (m *PreferenceRepoMock) CreatePreference(ctx context.Context, username, email string, notifications bool) (int, error) {
	args := m.Called(ctx, username, email, notifications)
	return args.Int(0), args.Error(1)
}

func (m *PreferenceRepoMock) LatestPreferenceByUsername(ctx context.Context, username string) (*models.PreferenceRecord, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PreferenceRecord), args.Error(1)
}

// Мок для Publisher
type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(exchange, routingkey string, message any) error {
	args := m.Called(exchange, routingkey, message)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPreferenceService_Save_WithNotifications(t *testing.T) {
	repo := new(PreferenceRepoMock)
	pub := new(PublisherMock)
	svc := services.NewPreferenceService(repo, pub, discardLogger())

	repo.On("CreatePreference", mock.Anything, "testuser", "test@example.com", true).
		Return(9, nil).Once()
	pub.On("Publish", "notifications", "preferences.saved",
		models.PreferenceSavedEvent{Username: "testuser", Email: "test@example.com"}).
		Return(nil).Once()

	id, err := svc.Save(context.Background(), "testuser", models.DummyPreferenceRequest{
		Email:         "test@example.com",
		Notifications: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestPreferenceService_Save_WithoutNotifications(t *testing.T) {
	repo := new(PreferenceRepoMock)
	pub := new(PublisherMock)
	svc := services.NewPreferenceService(repo, pub, discardLogger())

	repo.On("CreatePreference", mock.Anything, "testuser", "test@example.com", false).
		Return(10, nil).Once()

	id, err := svc.Save(context.Background(), "testuser", models.DummyPreferenceRequest{
		Email: "test@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, id)

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPreferenceService_Save_PublishErrorDoesNotFail(t *testing.T) {
	repo := new(PreferenceRepoMock)
	pub := new(PublisherMock)
	svc := services.NewPreferenceService(repo, pub, discardLogger())

	repo.On("CreatePreference", mock.Anything, "testuser", "test@example.com", true).
		Return(11, nil).Once()
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("broker unavailable")).Once()

	id, err := svc.Save(context.Background(), "testuser", models.DummyPreferenceRequest{
		Email:         "test@example.com",
		Notifications: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, id)
}

func TestPreferenceService_Latest(t *testing.T) {
	repo := new(PreferenceRepoMock)
	svc := services.NewPreferenceService(repo, new(PublisherMock), discardLogger())

	record := &models.PreferenceRecord{
		ID:            3,
		Username:      "testuser",
		Email:         "test@example.com",
		Notifications: true,
		SavedAt:       time.Now().UTC(),
	}
	repo.On("LatestPreferenceByUsername", mock.Anything, "testuser").Return(record, nil).Once()

	got, err := svc.Latest(context.Background(), "testuser")
	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestPreferenceService_Latest_NoRecords(t *testing.T) {
	repo := new(PreferenceRepoMock)
	svc := services.NewPreferenceService(repo, new(PublisherMock), discardLogger())

	repo.On("LatestPreferenceByUsername", mock.Anything, "nobody").Return(nil, nil).Once()

	got, err := svc.Latest(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}
