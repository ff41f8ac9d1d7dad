package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/form"
	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/service"
	"github.com/qs-lzh/train-ticket/internal/service/domain"
)

type BookingHandler struct {
	app *app.App
}

func NewBookingHandler(app *app.App) *BookingHandler {
	return &BookingHandler{
		app: app,
	}
}

func (h *BookingHandler) ShowBooking(c *gin.Context) {
	trains := h.listTrains(c)
	render(c, http.StatusOK, "booking.html", gin.H{"Trains": trains, "Form": &form.BookingForm{}})
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	user := currentUser(c)
	trains := h.listTrains(c)

	var f form.BookingForm
	c.ShouldBind(&f)
	if errs := f.Validate(); errs.Has() {
		render(c, http.StatusOK, "booking.html", gin.H{"Trains": trains, "Form": &f, "Errors": errs})
		return
	}
	travelDate, _ := f.Date()

	booking, err := h.app.BookingService.CreateBooking(user.ID, domain.CreateBookingInput{
		TrainID:         f.TrainID,
		PassengerName:   f.PassengerName,
		PassengerAge:    f.PassengerAge,
		PassengerGender: model.Gender(f.PassengerGender),
		TravelDate:      travelDate,
		SeatClass:       model.SeatClass(f.SeatClass),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainNotFound):
			flash(c, "danger", "Selected train not found")
		case errors.Is(err, service.ErrPastDate):
			flash(c, "danger", "Travel date cannot be in the past")
		case errors.Is(err, service.ErrDuplicatePaidBooking):
			flash(c, "warning", "You already have a paid booking for this train on this date")
		default:
			h.app.Logger.Error("booking creation failed", zap.Uint("user_id", user.ID), zap.Error(err))
			flash(c, "danger", "An error occurred while creating booking. Please try again.")
		}
		render(c, http.StatusOK, "booking.html", gin.H{"Trains": trains, "Form": &f})
		return
	}

	flash(c, "success", "Booking created successfully")
	c.Redirect(http.StatusFound, fmt.Sprintf("/payment/%d", booking.ID))
}

func (h *BookingHandler) listTrains(c *gin.Context) []model.Train {
	trains, err := h.app.CatalogService.ListTrains()
	if err != nil {
		h.app.Logger.Error("failed to list trains", zap.Error(err))
		return nil
	}
	if len(trains) == 0 {
		flash(c, "warning", "No trains available at the moment.")
	}
	return trains
}
