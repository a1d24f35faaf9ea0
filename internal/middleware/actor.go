package middleware

import (
	"net/http"
	"strconv"

	"github.com/dungnh/jobhub/internal/dto"
	"github.com/gin-gonic/gin"
)

const (
	RoleEmployer  = "employer"
	RoleCandidate = "candidate"
)

const actorKey = "actor"

// Actor is the authenticated identity for a request. It is resolved here at
// the edge and handed to services as plain parameters; nothing below the
// controllers reads ambient request state. The gateway in front of this
// service does the actual authentication and forwards the identity headers.
type Actor struct {
	ID   uint
	Role string
}

// RequireActor extracts X-Actor-ID / X-Actor-Role and enforces the role the
// route group expects.
func RequireActor(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		idStr := ctx.GetHeader("X-Actor-ID")
		actorRole := ctx.GetHeader("X-Actor-Role")
		if idStr == "" || actorRole == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Success: false, Message: "Missing actor identity",
			})
			return
		}
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil || id == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Success: false, Message: "Invalid actor identity",
			})
			return
		}
		if actorRole != role {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Success: false, Message: "This operation is not available for your role",
			})
			return
		}
		ctx.Set(actorKey, Actor{ID: uint(id), Role: actorRole})
		ctx.Next()
	}
}

func ActorFrom(ctx *gin.Context) Actor {
	value, ok := ctx.Get(actorKey)
	if !ok {
		return Actor{}
	}
	actor, _ := value.(Actor)
	return actor
}
