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

type UserHandler struct {
	svc *service.Service
	log *zap.Logger
}

func NewUserHandler(svc *service.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address string `json:"address"`
		Name    string `json:"name"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	err := h.svc.AddUser(r.Context(), models.User{Address: req.Address, Name: req.Name})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetUsers returns the full registry as a map of address to {name}.
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	out := make(map[string]map[string]string, len(users))
	for addr, u := range users {
		out[addr] = map[string]string{"name": u.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *UserHandler) SetUnreadCount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ChatID    string `json:"chatId"`
		Recipient string `json:"recipient"`
		Count     int    `json:"count"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.SetUnreadCount(r.Context(), req.ChatID, req.Recipient, req.Count); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *UserHandler) GetUnreadCounts(w http.ResponseWriter, r *http.Request) {
	recipient := mux.Vars(r)["recipient"]

	counts, err := h.svc.UnreadCounts(r.Context(), recipient)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *UserHandler) SaveContacts(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserAddress string   `json:"userAddress"`
		Contacts    []string `json:"contacts"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.SaveContacts(r.Context(), req.UserAddress, req.Contacts); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetContacts returns an array, empty rather than null for users with
// no contacts.
func (h *UserHandler) GetContacts(w http.ResponseWriter, r *http.Request) {
	owner := mux.Vars(r)["userAddress"]

	contacts, err := h.svc.Contacts(r.Context(), owner)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if contacts == nil {
		contacts = []string{}
	}
	writeJSON(w, http.StatusOK, contacts)
}
