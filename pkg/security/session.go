package security

import (
	"github.com/gin-gonic/gin"

	"github.com/Mbishu2002/newDesk/pkg/roles"
)

const sessionKey = "session"

// Session is the authenticated caller, carried explicitly through the
// request context. There is no ambient session singleton; anything that
// needs the caller reads it from here.
type Session struct {
	UserID   string     `json:"userId"`
	Username string     `json:"username"`
	Role     roles.Role `json:"role"`
	ShopID   *string    `json:"shopId,omitempty"`
}

func SetSession(c *gin.Context, s Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the caller's session, if the request passed the JWT
// middleware.
func SessionFrom(c *gin.Context) (Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
