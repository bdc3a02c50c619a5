package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/employee-directory/apperrors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type staticHandle struct {
	db *gorm.DB
}

func (s staticHandle) Handle(ctx context.Context) (*gorm.DB, error) {
	return s.db.WithContext(ctx), nil
}

type unavailableHandle struct{}

func (unavailableHandle) Handle(context.Context) (*gorm.DB, error) {
	return nil, apperrors.New(apperrors.CodeUnavailable, "Database Connection Error")
}

func newMockHandle(t *testing.T) (HandleProvider, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return staticHandle{db: db}, mock
}
