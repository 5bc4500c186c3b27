package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const directoryIndex = "index.html"

// SPAHandler is the catch-all: it serves files from PublicDir and falls back
// to the application entry point so client-side routes resolve.
type SPAHandler struct {
	PublicDir string
	IndexPath string // Entry point served for client-side routes
}

// NewSPAHandler creates a new SPAHandler
func NewSPAHandler(publicDir, indexPath string) *SPAHandler {
	return &SPAHandler{
		PublicDir: publicDir,
		IndexPath: indexPath,
	}
}

// Serve handles every request no route claimed.
func (h *SPAHandler) Serve(c *gin.Context) {
	method := c.Request.Method
	if method != http.MethodGet && method != http.MethodHead {
		c.String(http.StatusNotFound, "Cannot %s %s", method, c.Request.URL.Path)
		return
	}

	if name, ok := h.staticFile(c.Request.URL.Path); ok {
		if err := serveFile(c, name); err != nil {
			_ = c.Error(err)
		}
		return
	}

	if err := serveFile(c, h.IndexPath); err != nil {
		_ = c.Error(fmt.Errorf("failed to serve entry point: %w", err))
	}
}

// staticFile maps a request path onto a regular file below PublicDir. A
// directory matches through its own index.html. Dotfiles never match.
func (h *SPAHandler) staticFile(urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if clean == "/" {
		return "", false
	}
	for _, segment := range strings.Split(clean[1:], "/") {
		if strings.HasPrefix(segment, ".") {
			return "", false
		}
	}

	name := filepath.Join(h.PublicDir, filepath.FromSlash(clean))
	info, err := os.Stat(name)
	if err != nil {
		return "", false
	}
	if info.IsDir() {
		name = filepath.Join(name, directoryIndex)
		if info, err = os.Stat(name); err != nil {
			return "", false
		}
	}
	if !info.Mode().IsRegular() {
		return "", false
	}
	return name, true
}

// serveFile writes name with a weak size/mtime ETag. Content type,
// Last-Modified, conditional requests and ranges are handled by net/http.
func serveFile(c *gin.Context, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", name)
	}

	c.Header("Cache-Control", "public, max-age=0")
	c.Header("ETag", fmt.Sprintf(`W/"%x-%x"`, info.Size(), info.ModTime().UnixMilli()))
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	return nil
}
