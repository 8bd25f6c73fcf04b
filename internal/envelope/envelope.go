// Package envelope builds the uniform {success, error?, ...payload} JSON
// responses returned by every handler.
package envelope

import (
	"encoding/json"
	"net/http"
)

// GenericError is sent when a failure has no better message.
const GenericError = "Internal server error"

// Payload holds the fields merged into a success body.
type Payload map[string]interface{}

// Response is a status code plus an envelope body, ready to be written.
type Response struct {
	Status int
	Body   map[string]interface{}
}

// Success returns a 200 response whose body is payload plus success=true.
// The success flag is set last so a payload cannot override it.
func Success(payload Payload) Response {
	body := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["success"] = true
	return Response{Status: http.StatusOK, Body: body}
}

// Failure returns a 500 response with body {success:false, error:message}.
// An empty message is replaced with GenericError.
func Failure(message string) Response {
	if message == "" {
		message = GenericError
	}
	return Response{
		Status: http.StatusInternalServerError,
		Body:   map[string]interface{}{"success": false, "error": message},
	}
}

// WithStatus returns a copy of r with the status code replaced.
func (r Response) WithStatus(status int) Response {
	r.Status = status
	return r
}

// Write encodes the response as JSON.
func (r Response) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)
	json.NewEncoder(w).Encode(r.Body)
}
