package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/form"
	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type PaymentHandler struct {
	app *app.App
}

func NewPaymentHandler(app *app.App) *PaymentHandler {
	return &PaymentHandler{
		app: app,
	}
}

func (h *PaymentHandler) ShowPayment(c *gin.Context) {
	booking, ok := h.loadOwnBooking(c)
	if !ok {
		return
	}
	if booking.Paid {
		flash(c, "info", "This booking has already been paid")
		c.Redirect(http.StatusFound, fmt.Sprintf("/ticket/%d", booking.ID))
		return
	}
	render(c, http.StatusOK, "payment.html", gin.H{"Booking": booking, "Form": &form.PaymentForm{}})
}

func (h *PaymentHandler) Pay(c *gin.Context) {
	booking, ok := h.loadOwnBooking(c)
	if !ok {
		return
	}
	if booking.Paid {
		flash(c, "info", "This booking has already been paid")
		c.Redirect(http.StatusFound, fmt.Sprintf("/ticket/%d", booking.ID))
		return
	}

	var f form.PaymentForm
	c.ShouldBind(&f)
	if errs := f.Validate(); errs.Has() {
		render(c, http.StatusOK, "payment.html", gin.H{"Booking": booking, "Form": &f, "Errors": errs})
		return
	}

	user := currentUser(c)
	paid, newlyPaid, err := h.app.PaymentWorkflow.Pay(user.ID, booking.ID)
	if err != nil {
		h.app.Logger.Error("payment failed",
			zap.Uint("booking_id", booking.ID), zap.Uint("user_id", user.ID), zap.Error(err))
		flash(c, "danger", "Payment processing failed. Please try again.")
		render(c, http.StatusOK, "payment.html", gin.H{"Booking": booking, "Form": &f})
		return
	}

	if newlyPaid {
		flash(c, "success", "Payment successful! Your ticket has been confirmed.")
	} else {
		flash(c, "info", "This booking has already been paid")
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/ticket/%d", paid.ID))
}

// loadOwnBooking fetches the booking from the path id and enforces
// ownership, rendering or redirecting itself on failure.
func (h *PaymentHandler) loadOwnBooking(c *gin.Context) (*model.Booking, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		render(c, http.StatusNotFound, "404.html", nil)
		return nil, false
	}

	user := currentUser(c)
	booking, err := h.app.TicketService.GetTicket(user.ID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			render(c, http.StatusNotFound, "404.html", nil)
		case errors.Is(err, service.ErrUnauthorized):
			flash(c, "danger", "Unauthorized access")
			c.Redirect(http.StatusFound, "/")
		default:
			h.app.Logger.Error("failed to load booking", zap.Error(err))
			render(c, http.StatusInternalServerError, "500.html", nil)
		}
		return nil, false
	}
	return booking, true
}
