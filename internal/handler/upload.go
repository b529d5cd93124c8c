package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/httputil"
)

// maxUploadSize caps uploaded images at 5MB.
const maxUploadSize = 5 << 20

// allowedImageTypes are the MIME types accepted for uploads. The type is
// sniffed from the file content, not taken from the client's declaration.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadHandler stores admin-uploaded images under the configured directory
// and returns their public URL.
type UploadHandler struct {
	dir    string
	logger *slog.Logger

	// now is swappable so tests get deterministic filenames
	now func() time.Time
}

func NewUploadHandler(dir string, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{dir: dir, logger: logger, now: time.Now}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// Upload accepts one multipart image file.
// POST /api/admin/upload
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "File not found or too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "File not found")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		handleError(w, fmt.Errorf("%w: file exceeds the 5MB limit", domain.ErrUploadRejected))
		return
	}

	// Sniff the content type from the first bytes
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && err != io.EOF {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	contentType := http.DetectContentType(head[:n])
	if !allowedImageTypes[contentType] {
		handleError(w, fmt.Errorf("%w: only image files are accepted (JPG, PNG, WEBP, GIF)", domain.ErrUploadRejected))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	// Collision-resistant filename: timestamp plus sanitized original name
	safeName := unsafeFilenameChars.ReplaceAllString(header.Filename, "_")
	filename := fmt.Sprintf("project_%d_%s", h.now().UnixMilli(), safeName)

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	h.logger.Info("file uploaded", "filename", filename, "type", contentType, "size", header.Size)
	httputil.RespondJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		URL:      "/uploads/" + filename,
		Filename: filename,
	})
}
