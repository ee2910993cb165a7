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

package models

import (
	"encoding/json"
	"fmt"
)

// EntryVersion is the current chat log entry schema version.
const EntryVersion = 1

type EntryKind string

const (
	EntryMessage   EntryKind = "message"
	EntryEdit      EntryKind = "edit"
	EntryTombstone EntryKind = "tombstone"
)

// Message is a chat message as sent by a client. Only these fields are
// retained; anything else on the wire is dropped at decode time.
type Message struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`
	ImageURLs []string `json:"imageUrls,omitempty"`
}

// Entry is the versioned envelope written to a chat log. A "message"
// entry carries a Message; "edit" and "tombstone" entries reference an
// earlier entry by its content hash. Entries are immutable once
// appended.
type Entry struct {
	Version int       `json:"v"`
	Kind    EntryKind `json:"kind"`
	Message *Message  `json:"message,omitempty"`
	Ref     string    `json:"ref,omitempty"`
	Text    string    `json:"text,omitempty"`
}

// MessageEntry is one visible item in a chat listing: the content hash
// plus the message payload, shaped the way the log store's iterator
// exposed it. Corrupt marks records that failed schema validation; the
// payload is zero-valued in that case.
type MessageEntry struct {
	Hash    string  `json:"hash"`
	Payload Payload `json:"payload"`
	Corrupt bool    `json:"corrupt,omitempty"`
	Error   string  `json:"error,omitempty"`
}

type Payload struct {
	Value Message `json:"value"`
}

// EncodeEntry serializes an entry for the log store.
func EncodeEntry(e Entry) ([]byte, error) {
	e.Version = EntryVersion
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode log entry: %w", err)
	}
	return data, nil
}

// DecodeEntry validates and parses a stored log entry. Unknown versions
// and kinds are rejected so the read path can surface them as corrupt
// records instead of guessing.
func DecodeEntry(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("decode log entry: %w", err)
	}
	if e.Version != EntryVersion {
		return Entry{}, fmt.Errorf("unsupported log entry version %d", e.Version)
	}
	switch e.Kind {
	case EntryMessage:
		if e.Message == nil {
			return Entry{}, fmt.Errorf("message entry without payload")
		}
	case EntryEdit:
		if e.Ref == "" {
			return Entry{}, fmt.Errorf("edit entry without target hash")
		}
	case EntryTombstone:
		if e.Ref == "" {
			return Entry{}, fmt.Errorf("tombstone entry without target hash")
		}
	default:
		return Entry{}, fmt.Errorf("unknown log entry kind %q", e.Kind)
	}
	return e, nil
}
