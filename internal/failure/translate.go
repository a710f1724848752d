package failure

import (
	"errors"
	"net/http"
	"strconv"
)

// Response is the JSON body returned for every failed request.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NewResponse builds a Response from a raw status and message.
func NewResponse(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
		Error:   composeError(status, message),
	}
}

// Translate maps any error to a Response. It never fails.
func Translate(err error) Response {
	if err == nil {
		return NewResponse(http.StatusInternalServerError, "")
	}
	var fe *Error
	if !errors.As(err, &fe) {
		return NewResponse(http.StatusInternalServerError, err.Error())
	}
	return NewResponse(StatusFor(fe.Kind), fe.Error())
}

// StatusFor returns the HTTP status code for a failure kind.
func StatusFor(k Kind) int {
	switch k {
	case NotFound:
		return http.StatusNotFound
	case Conflict, BadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// composeError renders "<code>: <reason>. System error: <message>".
func composeError(status int, message string) string {
	return strconv.Itoa(status) + ": " + http.StatusText(status) + ". System error: " + message
}
