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

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/service"
)

type MessageHandler struct {
	svc *service.Service
	log *zap.Logger
}

func NewMessageHandler(svc *service.Service, log *zap.Logger) *MessageHandler {
	return &MessageHandler{svc: svc, log: log}
}

// Init forces storage initialization. Also runs eagerly at process
// start; this endpoint exists for clients that want to warm the store
// before sending.
func (h *MessageHandler) Init(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EnsureInit(r.Context()); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AddMessage appends a message to a chat log. Initialization is lazy
// here: the first message request may arrive before the eager init
// finishes.
func (h *MessageHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EnsureInit(r.Context()); err != nil {
		writeError(w, h.log, err)
		return
	}

	var req struct {
		ChatID  string         `json:"chatId"`
		Message models.Message `json:"message"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	hash, err := h.svc.AddMessage(r.Context(), req.ChatID, req.Message)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"hash": hash})
}

func (h *MessageHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	chatID := mux.Vars(r)["chatId"]

	messages, err := h.svc.Messages(r.Context(), chatID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (h *MessageHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID      string `json:"chatId"`
		MessageHash string `json:"messageHash"`
		NewText     string `json:"newText"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.EditMessage(r.Context(), req.ChatID, req.MessageHash, req.NewText); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"result":  "message edited",
	})
}

func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID      string `json:"chatId"`
		MessageHash string `json:"messageHash"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	ok, result := h.svc.DeleteMessage(r.Context(), req.ChatID, req.MessageHash)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": ok,
		"result":  result,
	})
}
