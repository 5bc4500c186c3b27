package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"grading-app-server/logging"
	"grading-app-server/models"
)

const (
	healthyStatus      = "healthy"
	gradesSavedMessage = "Grades saved successfully"
	// ISO-8601 in UTC with millisecond precision, e.g. 2026-10-18T09:30:00.000Z
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// APIHandler serves the JSON endpoints.
type APIHandler struct {
	Version   string
	BodyLimit int64 // Max bytes read from a JSON body; 0 disables the cap
	now       func() time.Time
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(version string, bodyLimit int64) *APIHandler {
	return &APIHandler{
		Version:   version,
		BodyLimit: bodyLimit,
		now:       time.Now,
	}
}

// Health handles GET /health
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    healthyStatus,
		Timestamp: h.now().UTC().Format(timestampLayout),
		Version:   h.Version,
	})
}

// SaveGrades handles POST /api/save-grades. Nothing is stored: the submission
// is written to the log and acknowledged.
func (h *APIHandler) SaveGrades(c *gin.Context) {
	var req models.SaveGradesRequest

	// Only JSON bodies are parsed; anything else is treated as an empty submission.
	if c.ContentType() == binding.MIMEJSON {
		if h.BodyLimit > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.BodyLimit)
		}
		body, err := c.GetRawData()
		if err != nil {
			_ = c.Error(fmt.Errorf("failed to read request body: %w", err))
			return
		}
		if err := decodeSubmission(body, &req); err != nil {
			_ = c.Error(fmt.Errorf("failed to parse request body: %w", err))
			return
		}
	}

	logging.FromContext(c.Request.Context()).Info("Saving grades",
		"groupName", req.GroupName,
		"grades", req.Grades,
		"comments", req.Comments,
	)

	c.JSON(http.StatusOK, models.SaveGradesResponse{
		Success:   true,
		Message:   gradesSavedMessage,
		GroupName: req.GroupName,
	})
}

// decodeSubmission accepts an empty body, an object or an array. The whole
// body must be a single JSON value; arrays carry no named fields and decode to
// an empty submission.
func decodeSubmission(body []byte, req *models.SaveGradesRequest) error {
	if len(body) == 0 {
		return nil
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return errors.New("body must be a JSON object or array")
	}
	if !json.Valid(body) {
		return errors.New("body is not valid JSON")
	}
	if trimmed[0] == '[' {
		return nil
	}
	return json.Unmarshal(body, req)
}
