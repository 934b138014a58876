package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophfav/internal/common"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    common.Kind `json:"kind"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps err to its kind and status. Storage failures never echo
// the underlying message.
func writeError(w http.ResponseWriter, err error) {
	kind := common.KindOf(err)
	msg := err.Error()
	if kind == common.KindStorage {
		msg = common.ErrorInternal.Error()
	}
	writeJSON(w, statusFor(kind), ErrorResponse{Kind: kind, Message: msg})
}

func statusFor(kind common.Kind) int {
	switch kind {
	case common.KindUnauthenticated:
		return http.StatusUnauthorized
	case common.KindStorage:
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

const maxBodyBytes = 1 << 20

var errMalformedBody = errors.New("malformed request body")

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", common.ErrValidation, errMalformedBody)
	}
	return nil
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Kind: common.KindNotFound, Message: "no route for " + r.URL.EscapedPath()})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Kind: common.KindValidation, Message: "method " + r.Method + " not allowed"})
}
