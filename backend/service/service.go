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

// Package service is the chat facade: message CRUD over the append-only
// chat logs, plus users, groups, unread counters and contact lists.
// It owns no authoritative state of its own; everything lives in the
// storage backend.
package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/eternitymarket/chatd/backend/storage"
)

// GroupChatPrefix marks chat ids that address a group rather than a
// user pair. The prefix is applied by callers; the facade treats group
// chat ids as opaque strings.
const GroupChatPrefix = "group_"

var (
	// ErrNotInitialized is returned when an operation runs before the
	// storage backend finished initializing.
	ErrNotInitialized = errors.New("service not initialized")

	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = storage.ErrNotFound

	// ErrInvalid is returned for requests that fail validation.
	ErrInvalid = errors.New("invalid request")
)

type Service struct {
	store storage.Store
	log   *zap.Logger

	mu          sync.Mutex
	initialized bool
	initFlight  singleflight.Group
}

func New(store storage.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// EnsureInit initializes the storage backend exactly once. Concurrent
// first calls share a single initialization attempt; a failed attempt
// leaves the service uninitialized so the next call retries.
func (s *Service) EnsureInit(ctx context.Context) error {
	s.mu.Lock()
	done := s.initialized
	s.mu.Unlock()
	if done {
		return nil
	}

	_, err, _ := s.initFlight.Do("init", func() (interface{}, error) {
		if err := s.store.Init(ctx); err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.initialized = true
		s.mu.Unlock()
		return nil, nil
	})
	return err
}

// Close releases the storage backend.
func (s *Service) Close() error {
	return s.store.Close()
}

func (s *Service) requireInit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	return nil
}

// ChatID derives the deterministic id of a two-party chat. The pair is
// sorted first, so ChatID(a, b) == ChatID(b, a).
func ChatID(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "_" + b
}
