package entity

import (
	"encoding/json"
	"net/http"
)

const (
	MessageSuccess = "Document retrieved and saved successfully"
	MessageFailure = "Error executing browser automation task"
	MessageInvalid = "Invalid task request"
)

type ResponseBody struct {
	Message     string `json:"message"`
	DocumentKey string `json:"documentKey,omitempty"`
	Error       string `json:"error,omitempty"`
}

// Response is returned to the invoker. Body is a JSON document encoded as a
// string, the shape API Gateway and function URLs expect.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

func NewSuccessResponse(documentKey string) Response {
	return newResponse(http.StatusOK, ResponseBody{Message: MessageSuccess, DocumentKey: documentKey})
}

func NewFailureResponse(err error) Response {
	return newResponse(http.StatusInternalServerError, ResponseBody{Message: MessageFailure, Error: err.Error()})
}

// NewInvalidRequestResponse is a failure response whose message marks the
// request itself as rejected. The status stays 500 like every other failure.
func NewInvalidRequestResponse(err error) Response {
	return newResponse(http.StatusInternalServerError, ResponseBody{Message: MessageInvalid, Error: err.Error()})
}

func (r Response) DecodeBody() (ResponseBody, error) {
	var body ResponseBody
	err := json.Unmarshal([]byte(r.Body), &body)
	return body, err
}

func newResponse(code int, body ResponseBody) Response {
	data, _ := json.Marshal(body)
	return Response{StatusCode: code, Body: string(data)}
}
