package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/qs-lzh/train-ticket/internal/app"
)

type PagesHandler struct {
	app *app.App
}

func NewPagesHandler(app *app.App) *PagesHandler {
	return &PagesHandler{
		app: app,
	}
}

func (h *PagesHandler) Index(c *gin.Context) {
	render(c, http.StatusOK, "index.html", nil)
}

func (h *PagesHandler) NotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", nil)
}

// ServeUpload serves stored profile pictures. Path traversal is cut off by
// the store resolving basenames only.
func (h *PagesHandler) ServeUpload(c *gin.Context) {
	path := h.app.Uploads.Path(c.Param("filename"))
	if _, err := os.Stat(path); err != nil {
		render(c, http.StatusNotFound, "404.html", nil)
		return
	}
	c.File(path)
}
