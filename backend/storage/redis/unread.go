// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const unreadPrefix = "chat:unread:" // chat:unread:{recipient} - hash of chatId -> count

// UnreadStore keeps per-recipient unread counters in a Redis hash, one
// field per chat. HSET makes each counter update atomic per field.
type UnreadStore struct {
	rdb *redis.Client
}

func NewUnreadStore(rdb *redis.Client) *UnreadStore {
	return &UnreadStore{rdb: rdb}
}

func (s *UnreadStore) SetUnreadCount(ctx context.Context, recipient, chatID string, count int) error {
	if err := s.rdb.HSet(ctx, unreadPrefix+recipient, chatID, count).Err(); err != nil {
		return fmt.Errorf("set unread count: %w", err)
	}
	return nil
}

func (s *UnreadStore) UnreadCounts(ctx context.Context, recipient string) (map[string]int, error) {
	fields, err := s.rdb.HGetAll(ctx, unreadPrefix+recipient).Result()
	if err != nil {
		return nil, fmt.Errorf("read unread counts: %w", err)
	}
	counts := make(map[string]int, len(fields))
	for chatID, raw := range fields {
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue // skip malformed counters
		}
		counts[chatID] = n
	}
	return counts, nil
}
