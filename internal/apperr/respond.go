package apperr

import (
	"errors"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Respond is the single HTTP boundary for errors: it logs the full error
// server-side and writes {"error": message} with the status derived from the
// error's kind. Untagged errors are reported as a generic 500 so internal
// details never reach a client.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err, "Internal server error")
	}

	entry := log.WithFields(log.Fields{
		"kind":   e.Kind.String(),
		"status": e.Kind.Status(),
		"path":   c.FullPath(),
		"method": c.Request.Method,
	})
	if e.Err != nil {
		entry = entry.WithError(e.Err)
	}
	if e.Kind == KindInternal {
		entry.Error(e.Message)
	} else {
		entry.Warn(e.Message)
	}

	c.AbortWithStatusJSON(e.Kind.Status(), gin.H{"error": e.Message})
}
