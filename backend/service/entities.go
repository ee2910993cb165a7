// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/storage"
)

func (s *Service) AddUser(ctx context.Context, u models.User) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	if u.Address == "" {
		return ErrInvalid
	}
	return s.store.PutUser(ctx, u)
}

// Users returns the full registry snapshot. No pagination; no known
// caller needs it.
func (s *Service) Users(ctx context.Context) (map[string]models.User, error) {
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	return s.store.Users(ctx)
}

// AddGroup creates a group, generating an id when the caller supplied
// none. The creator is always stored as a member.
func (s *Service) AddGroup(ctx context.Context, g models.Group) (string, error) {
	if err := s.requireInit(); err != nil {
		return "", err
	}
	if g.Creator == "" {
		return "", ErrInvalid
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if err := s.store.PutGroup(ctx, g); err != nil {
		return "", err
	}
	return g.ID, nil
}

// UpdateGroup overwrites a group wholesale. Concurrent edits are not
// merged; last write wins.
func (s *Service) UpdateGroup(ctx context.Context, g models.Group) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	if g.ID == "" || g.Creator == "" {
		return ErrInvalid
	}
	return s.store.PutGroup(ctx, g)
}

func (s *Service) Groups(ctx context.Context) (map[string]models.Group, error) {
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	return s.store.Groups(ctx)
}

// RemoveGroupMember drops a member from a group. A missing group is a
// silent no-op.
func (s *Service) RemoveGroupMember(ctx context.Context, groupID, member string) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	err := s.store.RemoveGroupMember(ctx, groupID, member)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) SetUnreadCount(ctx context.Context, chatID, recipient string, count int) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	if recipient == "" || chatID == "" {
		return ErrInvalid
	}
	return s.store.SetUnreadCount(ctx, recipient, chatID, count)
}

func (s *Service) UnreadCounts(ctx context.Context, recipient string) (map[string]int, error) {
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	return s.store.UnreadCounts(ctx, recipient)
}

// SaveContacts replaces a user's contact list wholesale. The store
// dedups; order of first occurrence is preserved.
func (s *Service) SaveContacts(ctx context.Context, owner string, contacts []string) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	if owner == "" {
		return ErrInvalid
	}
	return s.store.SaveContacts(ctx, owner, contacts)
}

func (s *Service) Contacts(ctx context.Context, owner string) ([]string, error) {
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	return s.store.Contacts(ctx, owner)
}
