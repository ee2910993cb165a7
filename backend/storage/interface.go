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

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/eternitymarket/chatd/backend/models"
)

// ErrNotFound is returned for lookups of absent entities. Callers that
// treat absence as a no-op must check for it explicitly.
var ErrNotFound = errors.New("not found")

// LogEntry is one raw record from a chat log: the content hash assigned
// at append time and the opaque serialized payload.
type LogEntry struct {
	Hash string
	Data []byte
}

// LogStore is the narrow interface over the append-only per-chat log.
// The log is content-addressed and hash-linked: each append's hash
// covers the previous head, so history cannot be rewritten in place.
type LogStore interface {
	Append(ctx context.Context, chatID string, data []byte) (string, error)
	Entries(ctx context.Context, chatID string) ([]LogEntry, error)
}

type UserStore interface {
	PutUser(ctx context.Context, u models.User) error
	Users(ctx context.Context) (map[string]models.User, error)
}

type GroupStore interface {
	PutGroup(ctx context.Context, g models.Group) error
	Groups(ctx context.Context) (map[string]models.Group, error)
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	RemoveGroupMember(ctx context.Context, groupID, member string) error
}

type ContactStore interface {
	SaveContacts(ctx context.Context, owner string, contacts []string) error
	Contacts(ctx context.Context, owner string) ([]string, error)
	AddContact(ctx context.Context, owner, contact string) error
}

type UnreadStore interface {
	SetUnreadCount(ctx context.Context, recipient, chatID string, count int) error
	UnreadCounts(ctx context.Context, recipient string) (map[string]int, error)
}

// Store is the full persistence surface. Init must be idempotent; Close
// releases all underlying handles.
type Store interface {
	LogStore
	UserStore
	GroupStore
	ContactStore
	UnreadStore

	Init(ctx context.Context) error
	Close() error
}

// EntryHash computes the content address for a log entry: the hash of
// the current head concatenated with the payload. Chaining on the head
// makes every hash depend on the entire prior log.
func EntryHash(head string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(head))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
