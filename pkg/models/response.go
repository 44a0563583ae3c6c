package models

import "time"

// ExtractionMetadata describes how a resume was processed.
type ExtractionMetadata struct {
	FileType              string          `json:"fileType"`
	TextLength            int             `json:"textLength"`
	ProcessingTimeSeconds float64         `json:"processingTimeSeconds"`
	Complexity            ComplexityLabel `json:"complexity"`
	ModelUsed             string          `json:"modelUsed"`
	Timestamp             time.Time       `json:"timestamp"`
}

// ExtractResponse is the response for a resume extraction request.
type ExtractResponse struct {
	Success       bool               `json:"success"`
	ExtractedText string             `json:"extracted_text"`
	Complexity    ComplexityLabel    `json:"complexity"`
	ResumeData    *ResumeData        `json:"resumeData,omitempty"`
	Metadata      ExtractionMetadata `json:"metadata"`
	RequestID     string             `json:"request_id"`
	Error         string             `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
