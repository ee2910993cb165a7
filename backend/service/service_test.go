// Copyright (C) 2025 eternitymarket.io <dev@eternitymarket.io>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/storage/memory"
)

func testService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := New(store, nil)
	require.NoError(t, svc.EnsureInit(context.Background()))
	return svc, store
}

func TestChatIDSymmetric(t *testing.T) {
	pairs := []struct{ a, b string }{
		{"0xAA", "0xBB"},
		{"0xBB", "0xAA"},
		{"alice", "bob"},
		{"", "0x1"},
	}
	for _, p := range pairs {
		assert.Equal(t, ChatID(p.a, p.b), ChatID(p.b, p.a), "ChatID(%q,%q)", p.a, p.b)
	}
	assert.Equal(t, "0xAA_0xBB", ChatID("0xBB", "0xAA"))
}

func TestNotInitialized(t *testing.T) {
	svc := New(memory.NewStore(), nil)
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, "a_b", models.Message{From: "a", To: "b", Text: "hi"})
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = svc.Messages(ctx, "a_b")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = svc.Users(ctx)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestAddAndListMessages(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	msg := models.Message{
		From:      "0xAA",
		To:        "0xBB",
		Text:      "hello",
		Timestamp: 1000,
		ImageURLs: []string{"http://localhost:3001/uploads/x.png"},
	}
	hash, err := svc.AddMessage(ctx, chatID, msg)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, hash, list[0].Hash)
	assert.Equal(t, msg, list[0].Payload.Value)
	assert.False(t, list[0].Corrupt)
}

func TestEditMessage(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	var hashes []string
	for _, text := range []string{"one", "two", "three"} {
		h, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: text, Timestamp: 1})
		require.NoError(t, err)
		hashes = append(hashes, h)
	}

	require.NoError(t, svc.EditMessage(ctx, chatID, hashes[1], "two edited"))

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 3, "edit must not change message count")

	assert.Equal(t, "one", list[0].Payload.Value.Text)
	assert.Equal(t, "two edited", list[1].Payload.Value.Text)
	assert.Equal(t, "three", list[2].Payload.Value.Text)

	// The edited message is visible under a new hash; untouched
	// messages keep theirs.
	assert.NotEqual(t, hashes[1], list[1].Hash)
	assert.Equal(t, hashes[0], list[0].Hash)
	assert.Equal(t, hashes[2], list[2].Hash)
}

func TestEditChain(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	orig, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: "v1", Timestamp: 1})
	require.NoError(t, err)

	require.NoError(t, svc.EditMessage(ctx, chatID, orig, "v2"))

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Editing again via the new hash works.
	require.NoError(t, svc.EditMessage(ctx, chatID, list[0].Hash, "v3"))

	// So does editing via the original hash a stale client still holds.
	require.NoError(t, svc.EditMessage(ctx, chatID, orig, "v4"))

	list, err = svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "v4", list[0].Payload.Value.Text)
}

func TestEditMissingMessage(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	err := svc.EditMessage(ctx, "a_b", "nosuchhash", "text")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMessage(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	h1, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: "keep", Timestamp: 1})
	require.NoError(t, err)
	h2, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: "drop", Timestamp: 2})
	require.NoError(t, err)

	ok, _ := svc.DeleteMessage(ctx, chatID, h2)
	assert.True(t, ok)

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, h1, list[0].Hash)
	for _, entry := range list {
		assert.NotEqual(t, h2, entry.Hash)
	}

	// Deleting again reports failure without raising.
	ok, result := svc.DeleteMessage(ctx, chatID, h2)
	assert.False(t, ok)
	assert.Equal(t, "message not found", result)
}

// A delete must win over a later edit of the same message,
// deterministically: the original behavior (full log rewrite on edit)
// could silently resurrect a concurrently deleted message.
func TestDeleteWinsOverEdit(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	hash, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: "doomed", Timestamp: 1})
	require.NoError(t, err)

	ok, _ := svc.DeleteMessage(ctx, chatID, hash)
	require.True(t, ok)

	err = svc.EditMessage(ctx, chatID, hash, "resurrected?")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContactSideEffect(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	msg := models.Message{From: "0xAA", To: "0xBB", Text: "hi", Timestamp: 1}
	_, err := svc.AddMessage(ctx, chatID, msg)
	require.NoError(t, err)
	_, err = svc.AddMessage(ctx, chatID, msg)
	require.NoError(t, err)

	contacts, err := svc.Contacts(ctx, "0xBB")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xAA"}, contacts, "sender appears exactly once")
}

func TestNoContactSideEffectForGroups(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, "group_g1", models.Message{From: "0xAA", To: "group_g1", Text: "hi", Timestamp: 1})
	require.NoError(t, err)

	contacts, err := svc.Contacts(ctx, "group_g1")
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestCorruptEntryPlaceholder(t *testing.T) {
	svc, store := testService(t)
	ctx := context.Background()
	chatID := ChatID("0xAA", "0xBB")

	good, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: "fine", Timestamp: 1})
	require.NoError(t, err)

	// Simulate a record written by a broken or newer peer.
	_, err = store.Append(ctx, chatID, []byte("{not json"))
	require.NoError(t, err)
	_, err = store.Append(ctx, chatID, []byte(`{"v":99,"kind":"message"}`))
	require.NoError(t, err)

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 3, "corrupt entries must not abort the listing")

	assert.False(t, list[0].Corrupt)
	assert.Equal(t, good, list[0].Hash)
	assert.True(t, list[1].Corrupt)
	assert.NotEmpty(t, list[1].Error)
	assert.True(t, list[2].Corrupt)
}

func TestScenarioAliceBob(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddUser(ctx, models.User{Address: "0xAA", Name: "Alice"}))
	require.NoError(t, svc.AddUser(ctx, models.User{Address: "0xBB", Name: "Bob"}))

	chatID := ChatID("0xAA", "0xBB")
	_, err := svc.AddMessage(ctx, chatID, models.Message{From: "0xAA", To: "0xBB", Text: "hi", Timestamp: 1000})
	require.NoError(t, err)

	list, err := svc.Messages(ctx, chatID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hi", list[0].Payload.Value.Text)

	contacts, err := svc.Contacts(ctx, "0xBB")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xAA"}, contacts)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", users["0xAA"].Name)
	assert.Equal(t, "Bob", users["0xBB"].Name)
}

func TestGroups(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	id, err := svc.AddGroup(ctx, models.Group{Name: "traders", Creator: "0xAA", Members: []string{"0xBB"}})
	require.NoError(t, err)
	require.NotEmpty(t, id, "id is generated when absent")

	groups, err := svc.Groups(ctx)
	require.NoError(t, err)
	g := groups[id]
	assert.Equal(t, "traders", g.Name)
	assert.True(t, g.HasMember("0xAA"), "creator is always a member")
	assert.True(t, g.HasMember("0xBB"))

	// Wholesale overwrite.
	g.Name = "whales"
	g.Members = []string{"0xAA", "0xCC"}
	require.NoError(t, svc.UpdateGroup(ctx, g))

	groups, err = svc.Groups(ctx)
	require.NoError(t, err)
	g = groups[id]
	assert.Equal(t, "whales", g.Name)
	assert.False(t, g.HasMember("0xBB"))
	assert.True(t, g.HasMember("0xCC"))

	require.NoError(t, svc.RemoveGroupMember(ctx, id, "0xCC"))
	groups, _ = svc.Groups(ctx)
	assert.False(t, groups[id].HasMember("0xCC"))

	// Removing from a nonexistent group is a silent no-op.
	assert.NoError(t, svc.RemoveGroupMember(ctx, "nosuchgroup", "0xAA"))
}

func TestUnreadCounts(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetUnreadCount(ctx, "a_b", "0xBB", 3))
	require.NoError(t, svc.SetUnreadCount(ctx, "group_g1", "0xBB", 1))
	require.NoError(t, svc.SetUnreadCount(ctx, "a_b", "0xBB", 0))

	counts, err := svc.UnreadCounts(ctx, "0xBB")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a_b": 0, "group_g1": 1}, counts)

	counts, err = svc.UnreadCounts(ctx, "0xCC")
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestSaveContactsDedup(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveContacts(ctx, "0xAA", []string{"0xBB", "0xCC", "0xBB"}))

	contacts, err := svc.Contacts(ctx, "0xAA")
	require.NoError(t, err)
	assert.Equal(t, []string{"0xBB", "0xCC"}, contacts)
}
