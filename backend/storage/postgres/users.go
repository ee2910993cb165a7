// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package postgres

import (
	"context"

	"github.com/eternitymarket/chatd/backend/models"
)

func (s *Store) PutUser(ctx context.Context, u models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (address, name)
		VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE
		SET name = $2`,
		u.Address, u.Name)
	return err
}

func (s *Store) Users(ctx context.Context) (map[string]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT address, name FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make(map[string]models.User)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.Address, &u.Name); err != nil {
			return nil, err
		}
		users[u.Address] = u
	}

	return users, rows.Err()
}
