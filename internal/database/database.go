package database

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"TODOLIST_BACK-END/internal/config"
	"TODOLIST_BACK-END/internal/models"
)

//go:embed schema.sql
var schema string

// Repository is the persistence contract the HTTP layer depends on.
// Get, update and delete report a missing row as ErrNotFound; unique
// constraint conflicts surface as ErrDuplicateKey.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateList(ctx context.Context, list *models.List) error
	GetList(ctx context.Context, id int64) (*models.List, error)
	ListLists(ctx context.Context, offset, limit int) ([]models.List, error)
	UpdateList(ctx context.Context, id int64, patch models.ListPatch) (*models.List, error)
	DeleteList(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context, offset, limit int) ([]models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// WithConn runs fn against a repository bound to a single connection
	// that is released when fn returns.
	WithConn(ctx context.Context, fn func(Repository) error) error
	Ping(ctx context.Context) error
}

// querier is satisfied by both *pgxpool.Pool and *pgxpool.Conn
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements Repository on PostgreSQL
type Store struct {
	pool *pgxpool.Pool
	db   querier
}

// New creates a Store over an existing pool
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// NewPool parses the configured DSN, applies pool settings and verifies
// connectivity with a ping.
func NewPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	// simple protocol is required behind PgBouncer in transaction mode
	if cfg.Database.SimpleProtocol {
		poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "todolist-backend"
	if cfg.Database.QueryTimeout > 0 {
		poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.Database.QueryTimeout.Milliseconds(), 10)
	}
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return pool, nil
}

// Migrate creates the tables and indexes if they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// WithConn acquires one pooled connection for the duration of fn.
// A Store already bound to a connection reuses it.
func (s *Store) WithConn(ctx context.Context, fn func(Repository) error) error {
	if s.pool == nil {
		return fn(s)
	}
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()
	return fn(&Store{db: conn})
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	_, err := s.db.Exec(ctx, "SELECT 1")
	return err
}
