package models

import "encoding/json"

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string `json:"status"`    // Always "healthy"
	Timestamp string `json:"timestamp"` // Server time, ISO-8601 UTC
	Version   string `json:"version"`   // Application version
}

// SaveGradesRequest is the body accepted by POST /api/save-grades.
// Every field is optional and kept as raw JSON so arbitrary shapes pass through.
type SaveGradesRequest struct {
	GroupName json.RawMessage `json:"groupName,omitempty"`
	Grades    json.RawMessage `json:"grades,omitempty"`
	Comments  json.RawMessage `json:"comments,omitempty"`
}

// SaveGradesResponse is returned by POST /api/save-grades
type SaveGradesResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	GroupName json.RawMessage `json:"groupName,omitempty"` // Omitted when the request had none
}

// ErrorResponse is the body of every 500 response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
