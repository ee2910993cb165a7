// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	redisStore "github.com/eternitymarket/chatd/backend/storage/redis"
)

// Store is the production persistence backend: PostgreSQL for entity
// tables (users, groups, contacts), Redis for chat logs and unread
// counters.
type Store struct {
	db    *sql.DB
	redis *redis.Client

	*redisStore.LogStore
	*redisStore.UnreadStore
}

func NewStore(db *sql.DB, rdb *redis.Client) *Store {
	return &Store{
		db:          db,
		redis:       rdb,
		LogStore:    redisStore.NewLogStore(rdb),
		UnreadStore: redisStore.NewUnreadStore(rdb),
	}
}

// Init verifies both backends are reachable and applies migrations.
// Safe to call more than once.
func (s *Store) Init(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	if err := s.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.redis.Close(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}
