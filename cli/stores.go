package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"
	"github.com/rogerio-castellano/shop-pos/internal/config"
	"github.com/rogerio-castellano/shop-pos/internal/db"
	"github.com/rogerio-castellano/shop-pos/internal/redissvc"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
)

// stores owns every connection the configured drivers need. Handles are
// opened lazily and shared between the catalog and the movement log.
type stores struct {
	cfg    config.Config
	logger *log.Logger

	sqlite   *sqlx.DB
	postgres *sql.DB
	redis    *redissvc.RedisService
}

func newStores(cfg config.Config, logger *log.Logger) *stores {
	return &stores{cfg: cfg, logger: logger}
}

func (s *stores) sqliteDB() (*sqlx.DB, error) {
	if s.sqlite == nil {
		conn, err := db.OpenSQLite(s.cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.logger.Info("opened sqlite database", "path", s.cfg.SQLitePath)
		s.sqlite = conn
	}
	return s.sqlite, nil
}

func (s *stores) postgresDB() (*sql.DB, error) {
	if s.postgres == nil {
		conn, err := db.Connect(s.cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		s.logger.Info("connected to postgres")
		s.postgres = conn
	}
	return s.postgres, nil
}

func (s *stores) catalog() (repo.CatalogRepository, error) {
	switch s.cfg.Catalog.Driver {
	case config.DriverSQLite:
		conn, err := s.sqliteDB()
		if err != nil {
			return nil, err
		}
		return repo.NewSQLiteCatalogRepository(conn, s.cfg.Markup, s.logger), nil
	case config.DriverPostgres:
		conn, err := s.postgresDB()
		if err != nil {
			return nil, err
		}
		return repo.NewPostgresCatalogRepository(conn, s.cfg.Markup, s.logger), nil
	default:
		r := repo.NewFileCatalogRepository(s.cfg.Catalog.Path, s.cfg.Markup, s.logger)
		if err := r.SetEncoding(s.cfg.Catalog.Encoding); err != nil {
			return nil, err
		}
		return r, nil
	}
}

func (s *stores) movements() (repo.MovementRepository, error) {
	switch s.cfg.MovementsDriver {
	case config.DriverMemory:
		return repo.NewInMemoryMovementRepository(), nil
	case config.DriverSQLite:
		conn, err := s.sqliteDB()
		if err != nil {
			return nil, err
		}
		return repo.NewSQLiteMovementRepository(conn), nil
	case config.DriverPostgres:
		conn, err := s.postgresDB()
		if err != nil {
			return nil, err
		}
		return repo.NewPostgresMovementRepository(conn), nil
	case config.DriverRedis:
		rs, err := redissvc.Connect(context.Background(), s.cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		s.logger.Info("connected to redis", "addr", s.cfg.RedisAddr)
		s.redis = rs
		return repo.NewRedisMovementRepository(rs), nil
	default:
		return repo.NopMovementRepository{}, nil
	}
}

func (s *stores) Close() {
	if s.sqlite != nil {
		if err := s.sqlite.Close(); err != nil {
			s.logger.Warn("failed to close sqlite", "err", err)
		}
	}
	if s.postgres != nil {
		if err := s.postgres.Close(); err != nil {
			s.logger.Warn("failed to close postgres", "err", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("failed to close redis", "err", err)
		}
	}
}

func openStores(cfg config.Config, logger *log.Logger) (*stores, repo.CatalogRepository, repo.MovementRepository, error) {
	s := newStores(cfg, logger)
	catalog, err := s.catalog()
	if err != nil {
		s.Close()
		return nil, nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	movements, err := s.movements()
	if err != nil {
		s.Close()
		return nil, nil, nil, fmt.Errorf("open movement log: %w", err)
	}
	return s, catalog, movements, nil
}
