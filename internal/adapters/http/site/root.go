// Package site serves player portraits for the dashboard.
package site

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/okian/pitchside/pkg/logger"
)

// ErrBadImageName is returned for names other than <player_id>.jpg.
var ErrBadImageName = errors.New("image name must be <player_id>.jpg")

// ImagePath is the route prefix of player portraits.
const ImagePath = "/media/players"

// Register attaches the player image route to r.
func Register(ctx context.Context, r chi.Router, images *ImageHandler) {
	if r == nil {
		panic("router is nil")
	}
	r.Get(ImagePath+"/{file}", images.HandleImage)
	logger.Get().Info(ctx, "player images registered",
		logger.String("dir", images.dir),
		logger.Bool("placeholder", images.placeholder != ""))
}

// ImageHandler serves <dir>/<player_id>.jpg, falling back to a placeholder
// file and then to the embedded silhouette.
type ImageHandler struct {
	dir         string
	placeholder string
}

// NewImageHandler creates an image handler. Either path may be empty.
func NewImageHandler(dir, placeholder string) *ImageHandler {
	return &ImageHandler{dir: dir, placeholder: placeholder}
}

// Resolve returns the file to serve for a player id, or "" when only the
// embedded silhouette is left.
func (h *ImageHandler) Resolve(id int) string {
	if h.dir != "" {
		path := filepath.Join(h.dir, strconv.Itoa(id)+".jpg")
		if isFile(path) {
			return path
		}
	}
	if h.placeholder != "" && isFile(h.placeholder) {
		return h.placeholder
	}
	return ""
}

// HandleImage handles GET /media/players/{id}.jpg.
func (h *ImageHandler) HandleImage(w http.ResponseWriter, r *http.Request) {
	id, err := parseImageName(chi.URLParam(r, "file"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if path := h.Resolve(id); path != "" {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFileFS(w, r, staticFS(), silhouette)
}

func parseImageName(name string) (int, error) {
	base, ok := strings.CutSuffix(name, ".jpg")
	if !ok {
		return 0, ErrBadImageName
	}
	id, err := strconv.Atoi(base)
	if err != nil || id < 1 {
		return 0, ErrBadImageName
	}
	return id, nil
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
