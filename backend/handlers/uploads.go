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
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/eternitymarket/chatd/backend/service"
)

const (
	maxUploadFiles = 10
	maxUploadMem   = 32 << 20 // multipart parse buffer
)

// UploadHandler stores chat image attachments on local disk and hands
// back URLs built from the request's host, matching wherever the
// gateway is reachable from the client's point of view.
type UploadHandler struct {
	dir string
	log *zap.Logger
}

func NewUploadHandler(dir string, log *zap.Logger) *UploadHandler {
	return &UploadHandler{dir: dir, log: log}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMem); err != nil {
		writeError(w, h.log, service.ErrInvalid)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.log, service.ErrInvalid)
		return
	}
	defer file.Close()

	url, err := h.saveFile(r, file, header)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *UploadHandler) UploadMultiple(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMem); err != nil {
		writeError(w, h.log, service.ErrInvalid)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 || len(files) > maxUploadFiles {
		writeError(w, h.log, service.ErrInvalid)
		return
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			writeError(w, h.log, service.ErrInvalid)
			return
		}
		url, err := h.saveFile(r, file, header)
		file.Close()
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		urls = append(urls, url)
	}
	writeJSON(w, http.StatusOK, map[string][]string{"urls": urls})
}

// saveFile writes the upload under a timestamp-derived name. A short
// uuid suffix keeps two files uploaded in the same millisecond apart.
func (h *UploadHandler) saveFile(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(header.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)

	dst, err := os.Create(filepath.Join(h.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close upload file: %w", err)
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s/uploads/%s", scheme, r.Host, name), nil
}
