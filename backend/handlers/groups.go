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

	"go.uber.org/zap"

	"github.com/eternitymarket/chatd/backend/models"
	"github.com/eternitymarket/chatd/backend/service"
)

type GroupHandler struct {
	svc *service.Service
	log *zap.Logger
}

func NewGroupHandler(svc *service.Service, log *zap.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, log: log}
}

// AddGroup creates a group. An id is generated when the client does
// not supply one, and echoed back either way.
func (h *GroupHandler) AddGroup(w http.ResponseWriter, r *http.Request) {
	var g models.Group
	if err := decodeBody(r, &g); err != nil {
		writeError(w, h.log, err)
		return
	}

	id, err := h.svc.AddGroup(r.Context(), g)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      id,
	})
}

func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	var g models.Group
	if err := decodeBody(r, &g); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.UpdateGroup(r.Context(), g); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GroupHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.Groups(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (h *GroupHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID       string `json:"groupId"`
		MemberAddress string `json:"memberAddress"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.svc.RemoveGroupMember(r.Context(), req.GroupID, req.MemberAddress); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
