// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/eternitymarket/chatd/backend/storage"
)

const (
	// Redis key prefixes
	logPrefix   = "chat:log:"   // chat:log:{chatId} - list of entry hashes
	entryPrefix = "chat:entry:" // chat:entry:{chatId}:{hash} - entry payload
	headPrefix  = "chat:head:"  // chat:head:{chatId} - hash of the latest entry

	// Append retries under contention on the head key before giving up.
	maxAppendRetries = 16
)

// LogStore keeps one hash-linked append-only log per chat in Redis.
// Entries are immutable; only the head pointer and the hash list grow.
type LogStore struct {
	rdb *redis.Client
}

func NewLogStore(rdb *redis.Client) *LogStore {
	return &LogStore{rdb: rdb}
}

// Append writes one entry to the chat log and returns its content hash.
// The head key is watched so two concurrent appends cannot both chain
// off the same head; the loser retries against the new head.
func (s *LogStore) Append(ctx context.Context, chatID string, data []byte) (string, error) {
	headKey := headPrefix + chatID
	logKey := logPrefix + chatID

	var hash string
	txn := func(tx *redis.Tx) error {
		head, err := tx.Get(ctx, headKey).Result()
		if err != nil && err != redis.Nil {
			return fmt.Errorf("read log head: %w", err)
		}
		hash = storage.EntryHash(head, data)
		entryKey := entryPrefix + chatID + ":" + hash

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, entryKey, data, 0)
			pipe.RPush(ctx, logKey, hash)
			pipe.Set(ctx, headKey, hash, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxAppendRetries; i++ {
		err := s.rdb.Watch(ctx, txn, headKey)
		if err == nil {
			return hash, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return "", fmt.Errorf("append to chat log %s: %w", chatID, err)
	}
	return "", fmt.Errorf("append to chat log %s: head contention", chatID)
}

// Entries returns the whole log in append order. A hash whose payload
// key is missing yields an entry with nil data; the read path above
// surfaces those as corrupt records rather than failing the listing.
func (s *LogStore) Entries(ctx context.Context, chatID string) ([]storage.LogEntry, error) {
	hashes, err := s.rdb.LRange(ctx, logPrefix+chatID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read chat log %s: %w", chatID, err)
	}
	if len(hashes) == 0 {
		return nil, nil
	}

	keys := make([]string, len(hashes))
	for i, h := range hashes {
		keys[i] = entryPrefix + chatID + ":" + h
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read chat log entries %s: %w", chatID, err)
	}

	entries := make([]storage.LogEntry, len(hashes))
	for i, h := range hashes {
		entries[i] = storage.LogEntry{Hash: h}
		if v, ok := values[i].(string); ok {
			entries[i].Data = []byte(v)
		}
	}
	return entries, nil
}
