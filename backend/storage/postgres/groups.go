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

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/storage"
)

// PutGroup writes a group wholesale: the group row is upserted and the
// member list replaced. The creator is always kept as a member.
func (s *Store) PutGroup(ctx context.Context, g models.Group) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO groups (group_id, name, created_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (group_id) DO UPDATE
		SET name = $2`,
		g.ID, g.Name, g.Creator)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM group_members WHERE group_id = $1`, g.ID)
	if err != nil {
		return err
	}

	members := g.Members
	if !g.HasMember(g.Creator) {
		members = append([]string{g.Creator}, members...)
	}
	for i, member := range members {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO group_members (group_id, user_address, position)
			VALUES ($1, $2, $3)
			ON CONFLICT (group_id, user_address) DO NOTHING`,
			g.ID, member, i)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) Groups(ctx context.Context) (map[string]models.Group, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT group_id, name, created_by FROM groups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make(map[string]models.Group)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Creator); err != nil {
			return nil, err
		}
		groups[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberRows, err := s.db.QueryContext(ctx, `
		SELECT group_id, user_address FROM group_members
		ORDER BY group_id, position`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var groupID, member string
		if err := memberRows.Scan(&groupID, &member); err != nil {
			return nil, err
		}
		if g, ok := groups[groupID]; ok {
			g.Members = append(g.Members, member)
			groups[groupID] = g
		}
	}

	return groups, memberRows.Err()
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var g models.Group
	err := s.db.QueryRowContext(ctx, `
		SELECT group_id, name, created_by FROM groups
		WHERE group_id = $1`, groupID).
		Scan(&g.ID, &g.Name, &g.Creator)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_address FROM group_members
		WHERE group_id = $1
		ORDER BY position`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var member string
		if err := rows.Scan(&member); err != nil {
			return nil, err
		}
		g.Members = append(g.Members, member)
	}

	return &g, rows.Err()
}

func (s *Store) RemoveGroupMember(ctx context.Context, groupID, member string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM group_members
		WHERE group_id = $1 AND user_address = $2`,
		groupID, member)
	return err
}
