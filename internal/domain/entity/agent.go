package entity

import "encoding/json"

// AgentInvocation is one synchronous request to the agent service.
// SessionAttributes never end up in InputText.
type AgentInvocation struct {
	SessionID         string
	InputText         string
	SessionAttributes map[string]string
}

// AgentResult is the parsed completion of the agent. Error explains a missing
// document; it never vetoes a document that is present.
type AgentResult struct {
	DocumentContent     string          `json:"documentContent,omitempty"`
	DocumentName        string          `json:"documentName,omitempty"`
	DocumentContentType string          `json:"documentContentType,omitempty"`
	ExecutionDetails    json.RawMessage `json:"executionDetails,omitempty"`
	Error               string          `json:"error,omitempty"`
}

// HasDocument reports whether the result can be published as an artifact.
func (r AgentResult) HasDocument() bool {
	return r.DocumentContent != "" && r.DocumentName != ""
}
