package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/usecase"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	msgStoreUnavailable = "document store is unavailable, try again later"
	msgInternal         = "internal server error"
)

// errorResponse maps err onto a status code and body. Only input errors carry
// their own text; for store-side failures the client gets queryMessage or a
// fixed string and the driver error stays in the logs.
func errorResponse(err error, queryMessage string) (int, ErrorResponse) {
	kind := usecase.ErrorKind(err)
	switch kind {
	case usecase.KindInvalidRequest:
		return http.StatusBadRequest, ErrorResponse{Kind: kind, Message: err.Error()}
	case usecase.KindQueryFailed:
		return http.StatusBadRequest, ErrorResponse{Kind: kind, Message: queryMessage}
	case usecase.KindStoreUnavailable:
		return http.StatusServiceUnavailable, ErrorResponse{Kind: kind, Message: msgStoreUnavailable}
	default:
		return http.StatusInternalServerError, ErrorResponse{Kind: kind, Message: msgInternal}
	}
}

func writeError(w http.ResponseWriter, err error, queryMessage string) {
	status, body := errorResponse(err, queryMessage)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
