package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type TicketHandler struct {
	app *app.App
}

func NewTicketHandler(app *app.App) *TicketHandler {
	return &TicketHandler{
		app: app,
	}
}

func (h *TicketHandler) ShowTicket(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		render(c, http.StatusNotFound, "404.html", nil)
		return
	}

	user := currentUser(c)
	booking, err := h.app.TicketService.GetTicket(user.ID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			render(c, http.StatusNotFound, "404.html", nil)
		case errors.Is(err, service.ErrUnauthorized):
			flash(c, "danger", "Unauthorized")
			c.Redirect(http.StatusFound, "/")
		default:
			h.app.Logger.Error("failed to load ticket", zap.Error(err))
			render(c, http.StatusInternalServerError, "500.html", nil)
		}
		return
	}

	render(c, http.StatusOK, "ticket.html", gin.H{"Booking": booking})
}
