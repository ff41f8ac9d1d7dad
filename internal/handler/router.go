package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
)

// NewRouter assembles the gin engine: session cookie, security headers,
// per-route rate limits and the page routes.
func NewRouter(a *app.App) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		a.Logger.Error("panic recovered", zap.Any("error", err))
		render(c, http.StatusInternalServerError, "500.html", nil)
	}))

	store := cookie.NewStore([]byte(a.Config.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(a.Config.SessionLifetime.Seconds()),
		HttpOnly: true,
		Secure:   a.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("session", store))
	r.Use(SecurityHeaders())
	r.Use(LoadUser(a))

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/css", "web/static/css")

	pages := NewPagesHandler(a)
	auth := NewAuthHandler(a)
	booking := NewBookingHandler(a)
	payment := NewPaymentHandler(a)
	ticket := NewTicketHandler(a)
	profile := NewProfileHandler(a)

	r.GET("/", pages.Index)
	r.GET("/uploads/:filename", pages.ServeUpload)

	authLimit := RateLimit(a, "auth", 5, time.Minute)
	r.GET("/register", auth.ShowRegister)
	r.POST("/register", authLimit, auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", authLimit, auth.Login)
	r.GET("/logout", RequireLogin(), auth.Logout)

	r.GET("/booking", RequireLogin(), booking.ShowBooking)
	r.POST("/booking", RequireLogin(), RateLimit(a, "booking", 10, time.Minute), booking.CreateBooking)

	r.GET("/payment/:id", RequireLogin(), payment.ShowPayment)
	r.POST("/payment/:id", RequireLogin(), RateLimit(a, "payment", 5, time.Minute), payment.Pay)

	r.GET("/ticket/:id", RequireLogin(), ticket.ShowTicket)

	r.GET("/profile", RequireLogin(), profile.ShowProfile)
	r.POST("/profile", RequireLogin(), RateLimit(a, "profile", 10, time.Minute),
		MaxUpload(a.Config.MaxUploadBytes), profile.UpdateProfile)

	r.NoRoute(pages.NotFound)

	return r
}
