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

package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/storage"
)

// AddMessage appends a message to the chat log and returns its content
// hash. As a side effect the sender is added to the recipient's contact
// list if absent; group chats have no single recipient, so the side
// effect is skipped for them.
func (s *Service) AddMessage(ctx context.Context, chatID string, msg models.Message) (string, error) {
	if err := s.requireInit(); err != nil {
		return "", err
	}
	if chatID == "" {
		return "", ErrInvalid
	}

	data, err := models.EncodeEntry(models.Entry{Kind: models.EntryMessage, Message: &msg})
	if err != nil {
		return "", err
	}
	hash, err := s.store.Append(ctx, chatID, data)
	if err != nil {
		return "", err
	}

	if msg.From != "" && msg.To != "" && !strings.HasPrefix(msg.To, GroupChatPrefix) {
		if err := s.store.AddContact(ctx, msg.To, msg.From); err != nil {
			// The message is already persisted; a failed contact update
			// is not worth failing the send over.
			s.log.Warn("add contact for recipient failed",
				zap.String("recipient", msg.To),
				zap.String("sender", msg.From),
				zap.Error(err))
		}
	}

	return hash, nil
}

// Messages returns the visible message list for a chat: the log folded
// so that edits replace their target's text (and hash) and tombstoned
// messages disappear. Records that fail validation come back as corrupt
// placeholders instead of aborting the listing.
func (s *Service) Messages(ctx context.Context, chatID string) ([]models.MessageEntry, error) {
	if err := s.requireInit(); err != nil {
		return nil, err
	}
	raw, err := s.store.Entries(ctx, chatID)
	if err != nil {
		return nil, err
	}
	return foldLog(raw).list(), nil
}

// EditMessage appends an edit entry superseding the message currently
// visible under hash. History is never rewritten: other messages keep
// their hashes, and the edited message becomes visible under the edit
// entry's hash. Editing a deleted message returns ErrNotFound (delete
// wins).
func (s *Service) EditMessage(ctx context.Context, chatID, hash, newText string) error {
	if err := s.requireInit(); err != nil {
		return err
	}
	raw, err := s.store.Entries(ctx, chatID)
	if err != nil {
		return err
	}
	f := foldLog(raw)
	orig, ok := f.alias[hash]
	if !ok || f.deleted[orig] {
		return ErrNotFound
	}

	data, err := models.EncodeEntry(models.Entry{Kind: models.EntryEdit, Ref: hash, Text: newText})
	if err != nil {
		return err
	}
	_, err = s.store.Append(ctx, chatID, data)
	return err
}

// DeleteMessage appends a tombstone for the message visible under hash.
// It reports success as a boolean with a human-readable message instead
// of an error; callers must check the boolean.
func (s *Service) DeleteMessage(ctx context.Context, chatID, hash string) (bool, string) {
	if err := s.requireInit(); err != nil {
		return false, err.Error()
	}
	raw, err := s.store.Entries(ctx, chatID)
	if err != nil {
		s.log.Error("read chat log for delete failed", zap.String("chat", chatID), zap.Error(err))
		return false, "failed to read chat log"
	}
	f := foldLog(raw)
	orig, ok := f.alias[hash]
	if !ok || f.deleted[orig] {
		return false, "message not found"
	}

	data, err := models.EncodeEntry(models.Entry{Kind: models.EntryTombstone, Ref: hash})
	if err != nil {
		return false, err.Error()
	}
	if _, err := s.store.Append(ctx, chatID, data); err != nil {
		s.log.Error("append tombstone failed", zap.String("chat", chatID), zap.Error(err))
		return false, "failed to delete message"
	}
	return true, "message deleted"
}

// folded is the result of replaying a chat log: per-message visible
// state keyed by the original message hash, plus an alias map from any
// hash a client may have seen (original or post-edit) back to the
// original.
type folded struct {
	order   []string
	visible map[string]*foldedMessage
	alias   map[string]string
	deleted map[string]bool
}

type foldedMessage struct {
	hash    string
	msg     models.Message
	corrupt bool
	errText string
}

func foldLog(raw []storage.LogEntry) *folded {
	f := &folded{
		visible: make(map[string]*foldedMessage),
		alias:   make(map[string]string),
		deleted: make(map[string]bool),
	}

	for _, entry := range raw {
		if entry.Data == nil {
			f.addCorrupt(entry.Hash, "missing payload")
			continue
		}
		e, err := models.DecodeEntry(entry.Data)
		if err != nil {
			f.addCorrupt(entry.Hash, err.Error())
			continue
		}

		switch e.Kind {
		case models.EntryMessage:
			f.order = append(f.order, entry.Hash)
			f.visible[entry.Hash] = &foldedMessage{hash: entry.Hash, msg: *e.Message}
			f.alias[entry.Hash] = entry.Hash

		case models.EntryEdit:
			orig, ok := f.alias[e.Ref]
			if !ok || f.deleted[orig] {
				continue // dangling ref, or the target was deleted first
			}
			v := f.visible[orig]
			if v.corrupt {
				continue
			}
			v.msg.Text = e.Text
			v.hash = entry.Hash
			f.alias[entry.Hash] = orig

		case models.EntryTombstone:
			if orig, ok := f.alias[e.Ref]; ok {
				f.deleted[orig] = true
			}
		}
	}

	return f
}

func (f *folded) addCorrupt(hash, errText string) {
	f.order = append(f.order, hash)
	f.visible[hash] = &foldedMessage{hash: hash, corrupt: true, errText: errText}
	f.alias[hash] = hash
}

// list materializes the surviving messages in append order.
func (f *folded) list() []models.MessageEntry {
	out := make([]models.MessageEntry, 0, len(f.order))
	for _, orig := range f.order {
		if f.deleted[orig] {
			continue
		}
		v := f.visible[orig]
		entry := models.MessageEntry{Hash: v.hash}
		if v.corrupt {
			entry.Corrupt = true
			entry.Error = v.errText
		} else {
			entry.Payload = models.Payload{Value: v.msg}
		}
		out = append(out, entry)
	}
	return out
}
