package handler

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/qs-lzh/train-ticket/internal/form"
	"github.com/qs-lzh/train-ticket/internal/model"
)

const (
	sessionUserIDKey = "user_id"
	contextUserKey   = "current_user"
)

type FlashMessage struct {
	Category string
	Message  string
}

// flash queues a one-shot message for the next rendered page. Categories
// mirror the bootstrap alert names the templates style with.
func flash(c *gin.Context, category, message string) {
	sess := sessions.Default(c)
	sess.AddFlash(category + "|" + message)
	sess.Save()
}

func takeFlashes(c *gin.Context) []FlashMessage {
	sess := sessions.Default(c)
	raw := sess.Flashes()
	if len(raw) > 0 {
		sess.Save()
	}
	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		s, ok := f.(string)
		if !ok {
			continue
		}
		category, message, found := strings.Cut(s, "|")
		if !found {
			category, message = "info", s
		}
		out = append(out, FlashMessage{Category: category, Message: message})
	}
	return out
}

func loginSession(c *gin.Context, userID uint) error {
	sess := sessions.Default(c)
	sess.Set(sessionUserIDKey, userID)
	return sess.Save()
}

func logoutSession(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Save()
}

// currentUser returns the user loaded by LoadUser, or nil when the request
// is anonymous.
func currentUser(c *gin.Context) *model.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// render merges the ambient page data (current user, pending flashes) into
// every template invocation.
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = form.FieldErrors{}
	}
	data["User"] = currentUser(c)
	data["Flashes"] = takeFlashes(c)
	c.HTML(code, name, data)
}
