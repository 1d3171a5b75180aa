package ginserver

import (
	"context"
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"dreamstay/internal/domain/shared/apperr"
)

// respondError translates the application error taxonomy to HTTP. Only the
// kind picks the status; the reason travels as the message. A commit attempt
// that hit its deadline surfaces as a conflict so clients retry instead of
// treating the booking as broken.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		c.JSON(http.StatusConflict, gin.H{"error": "operation timed out, please retry", "kind": string(apperr.KindConflict)})
		return
	}
	kind := apperr.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindAuthorization:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindStorage:
		status = http.StatusInternalServerError
	}
	message := apperr.ReasonOf(err)
	if status == http.StatusInternalServerError {
		// Driver detail stays in the logs, not in responses.
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message, "kind": string(kindOrInternal(kind))})
}

func kindOrInternal(kind apperr.Kind) apperr.Kind {
	if kind == "" {
		return apperr.KindStorage
	}
	return kind
}
