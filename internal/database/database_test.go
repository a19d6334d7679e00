package database_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"subscriptionservice/internal/database"
	"subscriptionservice/internal/database/dbtest"
	"subscriptionservice/internal/domain"
)

func TestSeedDefaultService(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	created, err := database.SeedDefaultService(ctx, db)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = database.SeedDefaultService(ctx, db)
	require.NoError(t, err)
	assert.False(t, created)

	var svc domain.Service
	require.NoError(t, db.Where("service_id = ?", database.DefaultServiceID).First(&svc).Error)
	assert.Equal(t, database.DefaultServiceSecret, svc.Secret)
}

func TestSeedDefaultService_SkipsPopulatedTable(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&domain.Service{ServiceID: "svcA", Secret: "p1"}).Error)

	created, err := database.SeedDefaultService(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, db.Model(&domain.Service{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestPing(t *testing.T) {
	db := dbtest.Open(t)
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "gorm duplicated key", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), want: true},
		{name: "postgres 23505", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "postgres fk violation", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "sqlite message", err: errors.New("constraint failed: UNIQUE constraint failed: services.service_id (2067)"), want: true},
		{name: "other", err: errors.New("connection reset by peer"), want: false},
		{name: "mentions duplicate", err: errors.New("duplicate column name: phone_number"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, database.IsUniqueViolation(tc.err))
		})
	}
}

func TestSQLiteDuplicateIsDetected(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&domain.Service{ServiceID: "svcA", Secret: "p1"}).Error)

	err := db.Create(&domain.Service{ServiceID: "svcA", Secret: "p2"}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}
