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

// Package memory provides an in-process implementation of storage.Store
// with the same log semantics as the Redis backend. It backs tests and
// dev-mode runs that have no PostgreSQL or Redis available.
package memory

import (
	"context"
	"sync"

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/storage"
)

type chatLog struct {
	head    string
	entries []storage.LogEntry
}

type Store struct {
	mu       sync.Mutex
	logs     map[string]*chatLog
	users    map[string]models.User
	groups   map[string]models.Group
	contacts map[string][]string
	unread   map[string]map[string]int
}

func NewStore() *Store {
	return &Store{
		logs:     make(map[string]*chatLog),
		users:    make(map[string]models.User),
		groups:   make(map[string]models.Group),
		contacts: make(map[string][]string),
		unread:   make(map[string]map[string]int),
	}
}

func (s *Store) Init(ctx context.Context) error { return nil }
func (s *Store) Close() error                  { return nil }

func (s *Store) Append(ctx context.Context, chatID string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[chatID]
	if !ok {
		log = &chatLog{}
		s.logs[chatID] = log
	}
	hash := storage.EntryHash(log.head, data)
	stored := make([]byte, len(data))
	copy(stored, data)
	log.entries = append(log.entries, storage.LogEntry{Hash: hash, Data: stored})
	log.head = hash
	return hash, nil
}

func (s *Store) Entries(ctx context.Context, chatID string) ([]storage.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, ok := s.logs[chatID]
	if !ok {
		return nil, nil
	}
	entries := make([]storage.LogEntry, len(log.entries))
	copy(entries, log.entries)
	return entries, nil
}

func (s *Store) PutUser(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Address] = u
	return nil
}

func (s *Store) Users(ctx context.Context) (map[string]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make(map[string]models.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	return users, nil
}

func (s *Store) PutGroup(ctx context.Context, g models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !g.HasMember(g.Creator) {
		g.Members = append([]string{g.Creator}, g.Members...)
	}
	g.Members = dedup(g.Members)
	s.groups[g.ID] = g
	return nil
}

func (s *Store) Groups(ctx context.Context) (map[string]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	groups := make(map[string]models.Group, len(s.groups))
	for k, v := range s.groups {
		groups[k] = v
	}
	return groups, nil
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &g, nil
}

func (s *Store) RemoveGroupMember(ctx context.Context, groupID, member string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[groupID]
	if !ok {
		return nil
	}
	members := g.Members[:0:0]
	for _, m := range g.Members {
		if m != member {
			members = append(members, m)
		}
	}
	g.Members = members
	s.groups[groupID] = g
	return nil
}

func (s *Store) SaveContacts(ctx context.Context, owner string, contacts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[owner] = dedup(contacts)
	return nil
}

func (s *Store) Contacts(ctx context.Context, owner string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]string, len(s.contacts[owner]))
	copy(contacts, s.contacts[owner])
	return contacts, nil
}

func (s *Store) AddContact(ctx context.Context, owner, contact string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contacts[owner] {
		if c == contact {
			return nil
		}
	}
	s.contacts[owner] = append(s.contacts[owner], contact)
	return nil
}

func (s *Store) SetUnreadCount(ctx context.Context, recipient, chatID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts, ok := s.unread[recipient]
	if !ok {
		counts = make(map[string]int)
		s.unread[recipient] = counts
	}
	counts[chatID] = count
	return nil
}

func (s *Store) UnreadCounts(ctx context.Context, recipient string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[string]int, len(s.unread[recipient]))
	for k, v := range s.unread[recipient] {
		counts[k] = v
	}
	return counts, nil
}

func dedup(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
