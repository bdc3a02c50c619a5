package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/employee-directory/apperrors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// ConnectionErrorMessage is reported to clients when no handle is available.
const ConnectionErrorMessage = "Database Connection Error"

// Options configures how the gateway reaches the database.
type Options struct {
	DSN            string
	Schema         string
	ConnectTimeout time.Duration
	LogLevel       gormlogger.LogLevel
	// SkipMigrate opens the database as is, without creating the schema.
	SkipMigrate bool
}

var errGatewayClosed = errors.New("database handle has been closed")

// Gateway owns the connection to the users and employees tables. The handle
// is opened on first use and memoized for the rest of the process.
// Concurrent callers share one in-flight attempt; a failed attempt is not
// cached, so the next caller tries again.
type Gateway struct {
	opts    Options
	log     *zap.Logger
	open    func(ctx context.Context) (*gorm.DB, error)
	connect singleflight.Group

	mu sync.Mutex
	db *gorm.DB
}

// NewGateway creates a gateway that connects lazily. Call Connect to
// establish the connection eagerly at startup.
func NewGateway(opts Options, log *zap.Logger) *Gateway {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}
	g := &Gateway{opts: opts, log: log}
	g.open = g.dial
	return g
}

// NewGatewayFromDB wraps an already opened handle.
func NewGatewayFromDB(db *gorm.DB) *Gateway {
	return &Gateway{
		db:  db,
		log: zap.NewNop(),
		open: func(context.Context) (*gorm.DB, error) {
			return nil, errGatewayClosed
		},
	}
}

// Connect resolves the handle now instead of on the first request.
func (g *Gateway) Connect(ctx context.Context) error {
	_, err := g.Handle(ctx)
	return err
}

// Handle returns a live handle bound to ctx. A caller whose ctx ends while
// a connection attempt is in flight stops waiting; the attempt itself runs
// to its own timeout for the callers still waiting on it.
func (g *Gateway) Handle(ctx context.Context) (*gorm.DB, error) {
	if db := g.current(); db != nil {
		return db.WithContext(ctx), nil
	}

	attempt := g.connect.DoChan("connect", func() (interface{}, error) {
		if db := g.current(); db != nil {
			return db, nil
		}
		db, err := g.open(context.WithoutCancel(ctx))
		if err != nil {
			g.log.Error("database connection failed", zap.Error(err))
			return nil, err
		}
		g.mu.Lock()
		g.db = db
		g.mu.Unlock()
		return db, nil
	})

	select {
	case res := <-attempt:
		if res.Err != nil {
			return nil, apperrors.Wrap(res.Err, apperrors.CodeUnavailable, ConnectionErrorMessage)
		}
		return res.Val.(*gorm.DB).WithContext(ctx), nil
	case <-ctx.Done():
		return nil, apperrors.Wrap(ctx.Err(), apperrors.CodeUnavailable, ConnectionErrorMessage)
	}
}

func (g *Gateway) current() *gorm.DB {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.db
}

// Ping checks that the database answers.
func (g *Gateway) Ping(ctx context.Context) error {
	db, err := g.Handle(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, ConnectionErrorMessage)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeUnavailable, ConnectionErrorMessage)
	}
	return nil
}

// Close releases the connection pool, if one was opened.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	g.db = nil
	return sqlDB.Close()
}

func (g *Gateway) dial(ctx context.Context) (*gorm.DB, error) {
	if g.opts.DSN == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.ConnectTimeout)
	defer cancel()

	namer := schema.NamingStrategy{}
	if g.opts.Schema != "" {
		namer.TablePrefix = g.opts.Schema + "."
	}

	db, err := gorm.Open(postgres.Open(g.opts.DSN), &gorm.Config{
		Logger:                 NewGormLogger(g.log, g.opts.LogLevel),
		NamingStrategy:         namer,
		SkipDefaultTransaction: true,
		TranslateError:         true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if !g.opts.SkipMigrate {
		if err := Migrate(ctx, db, g.opts.Schema); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	g.log.Info("connected to database", zap.String("schema", g.opts.Schema))
	return db, nil
}
