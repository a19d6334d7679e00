package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"subscriptionservice/internal/domain"
)

const (
	DefaultServiceID     = "test_service"
	DefaultServiceSecret = "test_password"

	pgUniqueViolation = "23505"

	sqliteBusyTimeout = 5 * time.Second
)

type Options struct {
	MaxOpenConns int
	Logger       *zap.Logger
}

// Connect opens PostgreSQL for postgres:// URLs and SQLite (modernc driver)
// for anything else.
func Connect(dsn string, opts Options) (*gorm.DB, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	cfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Info("connecting to PostgreSQL")
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		log.Info("using SQLite", zap.String("dsn", dsn))
		db, err = gorm.Open(
			gormsqlite.New(gormsqlite.Config{
				DriverName: "sqlite",
				DSN:        sqliteDSN(dsn),
			}),
			cfg,
		)
	}
	if err != nil {
		return nil, err
	}

	if opts.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	return db, nil
}

// Migrate creates or updates the services, tokens and subscriptions tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Service{},
		&domain.Token{},
		&domain.Subscription{},
	)
}

// SeedDefaultService inserts the default service when the services table is
// empty. It reports whether a row was created.
func SeedDefaultService(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Service{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	err := db.WithContext(ctx).Create(&domain.Service{
		ServiceID: DefaultServiceID,
		Secret:    DefaultServiceSecret,
	}).Error
	if err != nil {
		if IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Ping checks that the underlying connection pool is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// IsUniqueViolation reports whether err is a unique index conflict on any of
// the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	// modernc errors escape the dialector's translator; match its message.
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// sqliteDSN makes every pooled connection wait on a locked database instead of
// failing with SQLITE_BUSY, and begins transactions with BEGIN IMMEDIATE so
// the write lock is held from the first read. File databases use WAL.
func sqliteDSN(dsn string) string {
	params := url.Values{}
	if !strings.Contains(dsn, "busy_timeout") {
		params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", sqliteBusyTimeout.Milliseconds()))
	}
	if !strings.Contains(dsn, "journal_mode") && !strings.Contains(dsn, "mode=memory") && !strings.Contains(dsn, ":memory:") {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	if !strings.Contains(dsn, "_txlock") {
		params.Set("_txlock", "immediate")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + params.Encode()
}
