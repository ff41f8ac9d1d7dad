package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/form"
	"github.com/qs-lzh/train-ticket/internal/model"
	"github.com/qs-lzh/train-ticket/internal/upload"
)

type ProfileHandler struct {
	app *app.App
}

func NewProfileHandler(app *app.App) *ProfileHandler {
	return &ProfileHandler{
		app: app,
	}
}

func (h *ProfileHandler) ShowProfile(c *gin.Context) {
	user := currentUser(c)
	render(c, http.StatusOK, "profile.html", gin.H{
		"Form":     &form.ProfileForm{Name: user.Name},
		"Bookings": h.listBookings(c, user),
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	user := currentUser(c)

	var f form.ProfileForm
	if err := c.ShouldBind(&f); err != nil {
		// the body limit trips inside multipart parsing
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			flash(c, "danger", "File size exceeds maximum allowed size (2MB)")
			c.Redirect(http.StatusSeeOther, "/profile")
			return
		}
	}
	if errs := f.Validate(); errs.Has() {
		render(c, http.StatusOK, "profile.html", gin.H{
			"Form": &f, "Errors": errs, "Bookings": h.listBookings(c, user),
		})
		return
	}

	var picture []byte
	fileHeader, err := c.FormFile("profile_pic")
	if err == nil && fileHeader != nil && fileHeader.Filename != "" {
		if fileHeader.Size > h.app.Config.MaxUploadBytes {
			render(c, http.StatusRequestEntityTooLarge, "413.html", nil)
			return
		}
		if !upload.AllowedFile(fileHeader.Filename) {
			flash(c, "danger", "Invalid file type. Only images (PNG, JPG, JPEG, GIF) are allowed.")
			render(c, http.StatusOK, "profile.html", gin.H{
				"Form": &f, "Bookings": h.listBookings(c, user),
			})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			h.app.Logger.Error("failed to open upload", zap.Error(err))
			flash(c, "danger", "An error occurred while updating profile. Please try again.")
			c.Redirect(http.StatusSeeOther, "/profile")
			return
		}
		defer file.Close()

		picture, err = upload.ProcessImage(file)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidImage) {
				flash(c, "danger", "Invalid image file. Please upload a valid image.")
				render(c, http.StatusOK, "profile.html", gin.H{
					"Form": &f, "Bookings": h.listBookings(c, user),
				})
				return
			}
			h.app.Logger.Error("failed to process upload", zap.Error(err))
			flash(c, "danger", "An error occurred while updating profile. Please try again.")
			c.Redirect(http.StatusSeeOther, "/profile")
			return
		}
	}

	if err := h.app.ProfileService.UpdateProfile(user.ID, f.Name, picture); err != nil {
		h.app.Logger.Error("profile update failed", zap.Uint("user_id", user.ID), zap.Error(err))
		flash(c, "danger", "An error occurred while updating profile. Please try again.")
		c.Redirect(http.StatusSeeOther, "/profile")
		return
	}

	flash(c, "success", "Profile updated successfully")
	c.Redirect(http.StatusSeeOther, "/profile")
}

func (h *ProfileHandler) listBookings(c *gin.Context, user *model.User) []model.Booking {
	bookings, err := h.app.BookingService.ListUserBookings(user.ID)
	if err != nil {
		h.app.Logger.Error("failed to list bookings", zap.Uint("user_id", user.ID), zap.Error(err))
		return nil
	}
	return bookings
}
