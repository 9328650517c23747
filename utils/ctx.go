package utils

import "github.com/gin-gonic/gin"

// Keys under which the auth middlewares store the caller's identity.
const (
	CtxUserID = "userId"
	CtxRole   = "role"
)

// SetIdentity records the authenticated caller on the request context.
func SetIdentity(c *gin.Context, claims *Claims) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
}

// CurrentUserID is 0 for anonymous requests.
func CurrentUserID(c *gin.Context) uint {
	id, _ := c.Get(CtxUserID)
	uid, _ := id.(uint)
	return uid
}

func CurrentRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}
