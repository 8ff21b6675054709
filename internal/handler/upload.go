package handler

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// UploadHandler stores profile and product images on local disk and serves
// them back as static files.
type UploadHandler struct {
	Dir string
}

func (h UploadHandler) RegisterRoutes(r chi.Router) {
	r.Post("/uploads", h.upload)
}

// ServeStatic exposes previously uploaded files on the public surface.
func (h UploadHandler) ServeStatic(r chi.Router) {
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.Dir)))
	r.Get("/uploads/*", fs.ServeHTTP)
}

func (h UploadHandler) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(6 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	limited := io.LimitReader(file, 5<<20)
	data, err := io.ReadAll(limited)
	if err != nil || len(data) == 0 {
		writeError(w, http.StatusBadRequest, "file is empty")
		return
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = http.DetectContentType(data)
	}
	mime = strings.ToLower(strings.TrimSpace(mime))
	var ext string
	switch mime {
	case "image/png":
		ext = ".png"
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	case "image/webp":
		ext = ".webp"
	default:
		writeError(w, http.StatusBadRequest, "format must be PNG, JPG or WEBP")
		return
	}

	name, err := randomFilename(ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := os.WriteFile(filepath.Join(h.Dir, name), data, 0o644); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"url": "/uploads/" + name,
	})
}

func randomFilename(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}
