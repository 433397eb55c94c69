package middleware

import (
	"net/http"

	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/utils"
)

// RespondError writes err in the error envelope. Server-side failures are
// logged with their cause and reach the client only as a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	pub := errors.Public(err)
	if pub.StatusCode >= http.StatusInternalServerError && log != nil {
		log.WithFields(map[string]interface{}{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": GetRequestID(r),
			"code":       pub.Code,
		}).ErrorWithErr(err, "Request failed")
	}
	utils.WriteError(w, pub)
}
