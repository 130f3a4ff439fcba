package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jemin1834/orders-prediction/internal/models"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его uid
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash, role string) string {
	uid := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (uid, username, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)`,
		uid, username, email, passwordHash, role)
	require.NoError(t, err)
	return uid
}

// CreatePrediction создает тестовый прогноз с заданной меткой времени
func (f *TestDataFactory) CreatePrediction(t *testing.T, username string, predictedOrders int, createdAt time.Time) int {
	record := models.PredictionRecord{
		Username:        username,
		StoreType:       1,
		LocationType:    1,
		RegionCode:      14,
		Discount:        1,
		Year:            createdAt.Year(),
		Month:           int(createdAt.Month()),
		Day:             createdAt.Day(),
		Week:            1,
		PredictedOrders: predictedOrders,
		CreatedAt:       createdAt,
	}
	id, err := f.storage.CreatePrediction(context.Background(), record)
	require.NoError(t, err)
	return id
}

// CreateUpload создает тестовую загрузку
func (f *TestDataFactory) CreateUpload(t *testing.T, username, data string) int {
	id, err := f.storage.CreateUpload(context.Background(), username, data)
	require.NoError(t, err)
	return id
}

// CreatePreference создает тестовые настройки
func (f *TestDataFactory) CreatePreference(t *testing.T, username, email string, notifications bool) int {
	id, err := f.storage.CreatePreference(context.Background(), username, email, notifications)
	require.NoError(t, err)
	return id
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			err = storage.DB.Ping()
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	// Создаем таблицы
	_, err = storage.DB.Exec(`
        DROP TABLE IF EXISTS preferences CASCADE;
        DROP TABLE IF EXISTS uploads CASCADE;
        DROP TABLE IF EXISTS predictions CASCADE;
        DROP TABLE IF EXISTS users CASCADE;

        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            username TEXT NOT NULL UNIQUE,
            email TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE predictions (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            store_id INTEGER NOT NULL,
            store_type INTEGER NOT NULL,
            location_type INTEGER NOT NULL,
            region_code INTEGER NOT NULL,
            holiday INTEGER NOT NULL,
            discount INTEGER NOT NULL,
            sales INTEGER NOT NULL,
            year INTEGER NOT NULL,
            month INTEGER NOT NULL,
            day INTEGER NOT NULL,
            week INTEGER NOT NULL,
            predicted_orders INTEGER NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE uploads (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            data TEXT NOT NULL,
            uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE preferences (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            email TEXT NOT NULL,
            notifications BOOLEAN NOT NULL,
            saved_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE INDEX idx_predictions_created_at ON predictions (created_at DESC);
        CREATE INDEX idx_uploads_username ON uploads (username, uploaded_at DESC);
        CREATE INDEX idx_preferences_username ON preferences (username, saved_at DESC);
    `)
	require.NoError(t, err, "Failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
