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

	"github.com/eternitymarket/chatd/backend/service"
)

// Register mounts the full API surface under /api plus the static
// /uploads file server.
func Register(r *mux.Router, svc *service.Service, uploadDir string, log *zap.Logger) {
	messageHandler := NewMessageHandler(svc, log)
	userHandler := NewUserHandler(svc, log)
	groupHandler := NewGroupHandler(svc, log)
	uploadHandler := NewUploadHandler(uploadDir, log)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/init", messageHandler.Init).Methods("POST")
	api.HandleFunc("/message", messageHandler.AddMessage).Methods("POST")
	api.HandleFunc("/messages/{chatId}", messageHandler.GetMessages).Methods("GET")
	api.HandleFunc("/message", messageHandler.EditMessage).Methods("PUT")
	api.HandleFunc("/message", messageHandler.DeleteMessage).Methods("DELETE")

	api.HandleFunc("/user", userHandler.AddUser).Methods("POST")
	api.HandleFunc("/users", userHandler.GetUsers).Methods("GET")
	api.HandleFunc("/unreadCount", userHandler.SetUnreadCount).Methods("POST")
	api.HandleFunc("/unreadCounts/{recipient}", userHandler.GetUnreadCounts).Methods("GET")
	api.HandleFunc("/user-contacts", userHandler.SaveContacts).Methods("POST")
	api.HandleFunc("/user-contacts/{userAddress}", userHandler.GetContacts).Methods("GET")

	api.HandleFunc("/group", groupHandler.AddGroup).Methods("POST")
	api.HandleFunc("/group", groupHandler.UpdateGroup).Methods("PUT")
	api.HandleFunc("/groups", groupHandler.GetGroups).Methods("GET")
	api.HandleFunc("/group/member", groupHandler.RemoveMember).Methods("DELETE")

	api.HandleFunc("/upload", uploadHandler.Upload).Methods("POST")
	api.HandleFunc("/upload-multiple", uploadHandler.UploadMultiple).Methods("POST")

	// Uploaded attachments are served straight from disk.
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
}
