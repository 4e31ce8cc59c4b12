package middleware

import (
	"ipocket/internal/audit"

	"github.com/gin-gonic/gin"
)

// ActorFrom builds the audit actor from the authenticated request context.
// Must run after AuthRequired.
func ActorFrom(c *gin.Context) audit.Actor {
	uid := c.GetInt("uid")
	actor := audit.Actor{Username: c.GetString("username")}
	if uid != 0 {
		actor.ID = &uid
	}
	return actor
}
