package response

import (
	"log"
	"net/http"

	"gamehub/backend/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID reads the authenticated user's ID out of the request context.
// The auth middleware stores it under "user_id" as the JWT subject string.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	value, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	raw, ok := value.(string)
	if !ok {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.ErrUnauthorized
	}

	return userID, nil
}

// ResponseError writes err as a JSON error body with the status mapped from
// the error taxonomy. 5xx causes are logged server-side; the client only sees
// the message.
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	if code >= http.StatusInternalServerError {
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
