package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qs-lzh/train-ticket/internal/app"
	"github.com/qs-lzh/train-ticket/internal/form"
	"github.com/qs-lzh/train-ticket/internal/service"
)

type AuthHandler struct {
	app *app.App
}

func NewAuthHandler(app *app.App) *AuthHandler {
	return &AuthHandler{
		app: app,
	}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "register.html", gin.H{"Form": &form.RegisterForm{}})
}

func (h *AuthHandler) Register(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var f form.RegisterForm
	c.ShouldBind(&f)
	if errs := f.Validate(); errs.Has() {
		render(c, http.StatusOK, "register.html", gin.H{"Form": &f, "Errors": errs})
		return
	}

	user, err := h.app.AccountService.Register(f.Name, f.Email, f.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			flash(c, "danger", "Email already registered")
			render(c, http.StatusOK, "register.html", gin.H{"Form": &f})
			return
		}
		h.app.Logger.Error("register failed", zap.Error(err))
		flash(c, "danger", "An error occurred. Please try again.")
		render(c, http.StatusOK, "register.html", gin.H{"Form": &f})
		return
	}

	loginSession(c, user.ID)
	flash(c, "success", "Welcome! Account created successfully.")
	c.Redirect(http.StatusFound, "/profile")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{"Form": &form.LoginForm{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var f form.LoginForm
	c.ShouldBind(&f)
	if errs := f.Validate(); errs.Has() {
		render(c, http.StatusOK, "login.html", gin.H{"Form": &f, "Errors": errs})
		return
	}

	user, err := h.app.AccountService.Authenticate(f.Email, f.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.app.Logger.Error("login failed", zap.Error(err))
		}
		flash(c, "danger", "Invalid email or password")
		render(c, http.StatusOK, "login.html", gin.H{"Form": &f})
		return
	}

	loginSession(c, user.ID)
	flash(c, "success", "Logged in successfully")
	c.Redirect(http.StatusFound, safeNext(c.Query("next")))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	logoutSession(c)
	c.Redirect(http.StatusFound, "/")
}

// safeNext only honors site-local redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
