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

import "context"

func (s *Store) Migrate(ctx context.Context) error {
	migrations := []string{
		// Users table (wallet address is the identity)
		`CREATE TABLE IF NOT EXISTS users (
			address VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Groups table
		`CREATE TABLE IF NOT EXISTS groups (
			group_id VARCHAR(255) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			created_by VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Group members table; position preserves insertion order
		`CREATE TABLE IF NOT EXISTS group_members (
			group_id VARCHAR(255) NOT NULL,
			user_address VARCHAR(255) NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (group_id, user_address),
			FOREIGN KEY (group_id) REFERENCES groups(group_id) ON DELETE CASCADE
		)`,

		// Contact lists: ordered, deduped by primary key
		`CREATE TABLE IF NOT EXISTS user_contacts (
			user_address VARCHAR(255) NOT NULL,
			contact_address VARCHAR(255) NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_address, contact_address)
		)`,

		// Index for ordered contact retrieval
		`CREATE INDEX IF NOT EXISTS idx_user_contacts
		ON user_contacts(user_address, position)`,

		// Note: chat logs and unread counters live in Redis.
		// No PostgreSQL tables needed for messages.
	}

	for _, migration := range migrations {
		if _, err := s.db.ExecContext(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}
