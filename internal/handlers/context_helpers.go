package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/saloonhq/saloon-backend/internal/middleware"
)

// actorFrom reads the authenticated user off the context. ok is false on
// anonymous requests behind OptionalAuth.
func actorFrom(c *gin.Context) (userID uint, role string, ok bool) {
	id, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return 0, "", false
	}
	r, _ := c.Get(middleware.ContextUserRole)
	roleStr, _ := r.(string)
	return id.(uint), roleStr, true
}

func mustActor(c *gin.Context) (uint, string) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.MustGet(middleware.ContextUserRole).(string)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
