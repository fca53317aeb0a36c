package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// TaskRequest is the trigger payload delivered by the scheduler.
type TaskRequest struct {
	TaskID                string `json:"taskId"`
	UserID                string `json:"userId"`
	URLSecretName         string `json:"urlSecretName"`
	CredentialsSecretName string `json:"credentialsSecretName"`
	PromptFileKey         string `json:"promptFileKey"`
	OutputBucket          string `json:"outputBucket"`
	NotificationEmail     string `json:"notificationEmail"`
}

// ParseTaskRequest decodes a raw trigger payload. Unknown fields are ignored,
// wrong JSON types are reported as validation errors.
func ParseTaskRequest(raw []byte) (TaskRequest, error) {
	var req TaskRequest
	if len(strings.TrimSpace(string(raw))) == 0 {
		return req, &ValidationError{Reason: "empty payload"}
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return req, &ValidationError{Reason: "payload must be a JSON object"}
			}
			return req, &ValidationError{Fields: []string{typeErr.Field}, Reason: "field must be a string"}
		}
		return req, &ValidationError{Reason: fmt.Sprintf("malformed payload: %v", err)}
	}
	return req, nil
}

func (r TaskRequest) Validate() error {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	check("taskId", r.TaskID)
	check("userId", r.UserID)
	check("urlSecretName", r.URLSecretName)
	check("credentialsSecretName", r.CredentialsSecretName)
	check("promptFileKey", r.PromptFileKey)
	check("outputBucket", r.OutputBucket)
	check("notificationEmail", r.NotificationEmail)

	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Reason: "missing required fields"}
	}

	if !r.HasValidNotificationEmail() {
		return &ValidationError{Fields: []string{"notificationEmail"}, Reason: "invalid email address"}
	}

	return nil
}

// HasValidNotificationEmail reports whether a failure email can be sent to
// the request's notification address. Any single RFC 5322 address is
// accepted, including one with a display name.
func (r TaskRequest) HasValidNotificationEmail() bool {
	if strings.TrimSpace(r.NotificationEmail) == "" {
		return false
	}
	_, err := mail.ParseAddress(r.NotificationEmail)
	return err == nil
}

func (r TaskRequest) SessionID() string {
	return "session-" + r.TaskID
}
