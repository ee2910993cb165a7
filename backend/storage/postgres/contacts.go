// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package postgres

import "context"

// SaveContacts replaces the owner's contact list. Duplicates in the
// input are collapsed, first occurrence wins the position.
func (s *Store) SaveContacts(ctx context.Context, owner string, contacts []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM user_contacts WHERE user_address = $1`, owner)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(contacts))
	pos := 0
	for _, contact := range contacts {
		if seen[contact] {
			continue
		}
		seen[contact] = true
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_contacts (user_address, contact_address, position)
			VALUES ($1, $2, $3)`,
			owner, contact, pos)
		if err != nil {
			return err
		}
		pos++
	}

	return tx.Commit()
}

func (s *Store) Contacts(ctx context.Context, owner string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT contact_address FROM user_contacts
		WHERE user_address = $1
		ORDER BY position`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []string
	for rows.Next() {
		var contact string
		if err := rows.Scan(&contact); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

// AddContact appends a contact to the owner's list if absent. The
// conflict clause makes repeat sends a no-op.
func (s *Store) AddContact(ctx context.Context, owner, contact string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_contacts (user_address, contact_address, position)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0)
		FROM user_contacts WHERE user_address = $1
		ON CONFLICT (user_address, contact_address) DO NOTHING`,
		owner, contact)
	return err
}
