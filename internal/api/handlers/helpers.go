package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pratik-mahalle/fitcoach/internal/api/middleware"
	"github.com/pratik-mahalle/fitcoach/internal/domain/user"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/errors"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/logger"
	"github.com/pratik-mahalle/fitcoach/internal/pkg/validator"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

// writeError writes err in the error envelope, hiding server-side detail
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	middleware.RespondError(w, r, log, err)
}

// currentUser returns the authenticated caller or an Unauthorized error
func currentUser(r *http.Request) (*user.User, error) {
	u, ok := middleware.GetUser(r)
	if !ok {
		return nil, errors.Unauthorized("Authentication required")
	}
	return u, nil
}

// decodeAndValidate reads a JSON body into dst and runs struct validation
func decodeAndValidate(r *http.Request, val *validator.Validator, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return errors.InvalidInput("Invalid request body")
	}
	if val != nil {
		if verrs := val.Validate(dst); len(verrs) > 0 {
			return errors.ValidationError("Validation failed", verrs)
		}
	}
	return nil
}
