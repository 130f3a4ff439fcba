package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jemin1834/orders-prediction/internal/models"
)

func TestStorage_RegisterUser(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	uid, err := storage.RegisterUser(context.Background(), models.User{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashedpassword",
		Role:         "user",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, uid)

	// Повторная регистрация того же имени отклоняется базой
	_, err = storage.RegisterUser(context.Background(), models.User{
		Username:     "testuser",
		Email:        "other@example.com",
		PasswordHash: "otherhash",
		Role:         "user",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUserExists))
}

func TestStorage_GetUserByUsername(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "testuser", "test@example.com", "hashedpassword", "admin")

	got, err := storage.GetUserByUsername(context.Background(), "testuser")
	require.NoError(t, err)
	assert.Equal(t, "testuser", got.Username)
	assert.Equal(t, "test@example.com", got.Email)
	assert.Equal(t, "hashedpassword", got.PasswordHash)
	assert.Equal(t, "admin", got.Role)

	_, err = storage.GetUserByUsername(context.Background(), "nonexistent")
	require.Error(t, err)
}

func TestStorage_ListUsernames(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreateUser(t, "user1", "user1@example.com", "hash1", "user")
	factory.CreateUser(t, "user2", "user2@example.com", "hash2", "user")
	factory.CreateUser(t, "admin", "admin@example.com", "hash3", "admin")

	usernames, err := storage.ListUsernames(context.Background())
	require.NoError(t, err)
	assert.Len(t, usernames, 3)
	assert.Contains(t, usernames, "user1")
	assert.Contains(t, usernames, "user2")
	assert.Contains(t, usernames, "admin")
}

func TestStorage_ListRecentPredictions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	base := time.Date(2022, 1, 3, 12, 0, 0, 0, time.UTC)
	for i := range 7 {
		factory.CreatePrediction(t, "testuser", 10+i, base.Add(time.Duration(i)*time.Minute))
	}

	got, err := storage.ListRecentPredictions(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, got, 5)

	// Строго по убыванию времени, начиная с самой свежей записи
	assert.Equal(t, 16, got[0].PredictedOrders)
	for i := 1; i < len(got); i++ {
		assert.True(t, got[i].CreatedAt.Before(got[i-1].CreatedAt))
	}
}

func TestStorage_ListRecentPredictions_FewerThanLimit(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	base := time.Date(2022, 1, 3, 12, 0, 0, 0, time.UTC)
	factory.CreatePrediction(t, "testuser", 10, base)
	factory.CreatePrediction(t, "testuser", 20, base.Add(time.Minute))

	got, err := storage.ListRecentPredictions(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStorage_CreatePrediction_RoundTrip(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	createdAt := time.Date(2022, 1, 3, 12, 0, 0, 0, time.UTC)
	record := models.PredictionRecord{
		Username:        "testuser",
		StoreID:         0,
		StoreType:       2,
		LocationType:    1,
		RegionCode:      14,
		Holiday:         0,
		Discount:        1,
		Sales:           0,
		Year:            2022,
		Month:           1,
		Day:             3,
		Week:            1,
		PredictedOrders: 57,
		CreatedAt:       createdAt,
	}

	id, err := storage.CreatePrediction(context.Background(), record)
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	got, err := storage.ListAllPredictions(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, record.StoreType, got[0].StoreType)
	assert.Equal(t, record.Week, got[0].Week)
	assert.Equal(t, record.PredictedOrders, got[0].PredictedOrders)
	assert.True(t, got[0].CreatedAt.Equal(createdAt))
}

func TestStorage_ClearPredictions(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	base := time.Date(2022, 1, 3, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		factory.CreatePrediction(t, "testuser", 10+i, base.Add(time.Duration(i)*time.Minute))
	}

	deleted, err := storage.ClearPredictions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	got, err := storage.ListAllPredictions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStorage_Uploads(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	id1 := factory.CreateUpload(t, "user1", `{"columns":["a"],"rows":[["1"]]}`)
	id2 := factory.CreateUpload(t, "user1", `{"columns":["b"],"rows":[["2"]]}`)
	factory.CreateUpload(t, "user2", `{"columns":["c"],"rows":[["3"]]}`)

	got, err := storage.ListUploadsByUsername(context.Background(), "user1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].ID, got[1].ID)
	assert.Contains(t, []int{id1, id2}, got[0].ID)

	summaries, err := storage.ListUploadSummaries(context.Background())
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
	// В сводке нет содержимого таблиц
	for _, s := range summaries {
		assert.Empty(t, s.Data)
	}

	deleted, err := storage.ClearUploads(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	got, err = storage.ListUploadsByUsername(context.Background(), "user1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStorage_Preferences(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	factory.CreatePreference(t, "testuser", "old@example.com", false)
	id2 := factory.CreatePreference(t, "testuser", "new@example.com", true)

	got, err := storage.LatestPreferenceByUsername(context.Background(), "testuser")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id2, got.ID)
	assert.Equal(t, "new@example.com", got.Email)
	assert.True(t, got.Notifications)

	// Пользователь без настроек
	got, err = storage.LatestPreferenceByUsername(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}
