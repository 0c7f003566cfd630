package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"jobmatch/internal/common"
)

// ErrorCollector counts responses that end in a server error.
type ErrorCollector interface {
	IncErrors()
}

type collectorHolder struct {
	collector ErrorCollector
}

var errorCollector atomic.Pointer[collectorHolder]

func SetErrorCollector(collector ErrorCollector) {
	errorCollector.Store(&collectorHolder{collector: collector})
}

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    common.Code       `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err as a JSON error body. Causes of internal errors are never
// exposed to the client.
func Error(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	status := StatusFor(code)
	payload := errorPayload{Code: code, Message: "internal error"}
	var coded *common.Error
	if errors.As(err, &coded) && code != common.CodeInternal {
		payload.Message = coded.Message
		payload.Fields = coded.Fields
	}
	if status >= http.StatusInternalServerError {
		if holder := errorCollector.Load(); holder != nil && holder.collector != nil {
			holder.collector.IncErrors()
		}
	}
	JSON(w, status, errorBody{Error: payload})
}

func StatusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
