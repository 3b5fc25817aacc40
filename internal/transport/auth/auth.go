// Package auth carries the authenticated caller identity through the gin
// request context. It sits below the handler packages so both the middleware
// and the handlers can use it without an import cycle.
package auth

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const callerIDKey = "caller_id"

func SetCallerID(c *gin.Context, id uuid.UUID) {
	c.Set(callerIDKey, id)
}

func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(callerIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
