package entity

import "strings"

const DefaultContentType = "application/pdf"

type PublishRequest struct {
	Bucket        string
	UserID        string
	TaskID        string
	DocumentName  string
	Base64Content string
	ContentType   string
}

// ArtifactKey builds the object key {userId}/{taskId}/{documentName}.
// Object keys are literal, so documentName is used verbatim.
func ArtifactKey(userID, taskID, documentName string) string {
	return userID + "/" + taskID + "/" + documentName
}

// ValidDocumentName rejects names that would leave the key without a final
// segment.
func ValidDocumentName(name string) bool {
	return strings.Trim(name, "/") != ""
}

// Object is a blob written to the object store.
type Object struct {
	Bucket      string
	Key         string
	Body        []byte
	ContentType string
}
