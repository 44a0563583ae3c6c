package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resume-extract/internal/config"
	"resume-extract/internal/extractor/workers"
	"resume-extract/internal/llm"
	"resume-extract/internal/llm/processors"
	"resume-extract/internal/logging"
	"resume-extract/pkg/models"
	"resume-extract/pkg/utils"
)

var validate = validator.New()

// ExtractResumeHandler handles resume upload requests: extract text on the
// worker pool, normalize and classify it, then run structured extraction.
func ExtractResumeHandler(cfg *config.Config, poolManager *workers.PoolManager, llmManager *llm.Manager) echo.HandlerFunc {
	normalizer := processors.NewTextNormalizer()
	classifier := processors.NewComplexityClassifier()

	return func(c echo.Context) error {
		startTime := time.Now()
		requestID := utils.GenerateRequestID()
		logger := logging.LogWithRequestID(requestID)

		logger.Info("Resume extraction request received")

		fileHeader, err := c.FormFile("file")
		if err != nil {
			logger.Error("No file in request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_file",
				Message:   "Request must include a file upload named 'file'",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		req := models.ExtractRequest{
			FileName:  fileHeader.Filename,
			Extension: strings.ToLower(filepath.Ext(fileHeader.Filename)),
			FileSize:  fileHeader.Size,
		}
		if err := validate.Struct(&req); err != nil {
			logger.Error("Upload validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   fmt.Sprintf("Unsupported upload: %v", err),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		if req.FileSize > cfg.Extractor.MaxFileSize {
			return c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:     "file_too_large",
				Message:   "Uploaded file exceeds the maximum allowed size",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			logger.Error("Failed to open uploaded file", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "upload_failed",
				Message:   "Failed to read uploaded file",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Failed to read uploaded file", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "upload_failed",
				Message:   "Failed to read uploaded file",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		ctx := c.Request().Context()

		result, err := poolManager.SubmitJob(ctx, req.FileName, req.Extension, data)
		if err != nil {
			return extractionError(c, requestID, err)
		}
		if result.Error != nil {
			return extractionError(c, requestID, result.Error)
		}

		// Empty text is not an error here: a scanned PDF whose fallbacks all
		// came up blank still gets a (sparse) structured record downstream.
		normalized := normalizer.Normalize(result.Text)
		complexity := classifier.Classify(normalized)
		logger.Info("Text extracted and classified", map[string]interface{}{
			"file_name":   req.FileName,
			"text_length": len(normalized),
			"complexity":  complexity,
		})

		parsed, err := llmManager.ParseResume(ctx, normalized, complexity)
		if err != nil {
			return extractionError(c, requestID, err)
		}

		response := models.ExtractResponse{
			Success:       true,
			ExtractedText: normalized,
			Complexity:    complexity,
			ResumeData:    parsed.Resume,
			Metadata: models.ExtractionMetadata{
				FileType:              req.Extension,
				TextLength:            len(normalized),
				ProcessingTimeSeconds: time.Since(startTime).Seconds(),
				Complexity:            complexity,
				ModelUsed:             parsed.ModelUsed,
				Timestamp:             time.Now(),
			},
			RequestID: requestID,
		}

		logger.Info("Resume extraction completed", map[string]interface{}{
			"processing_time": utils.FormatDuration(time.Since(startTime)),
			"complexity":      complexity,
			"model_used":      parsed.ModelUsed,
			"from_cache":      parsed.FromCache,
			"sections":        len(parsed.Resume.Sections),
		})

		return c.JSON(http.StatusOK, response)
	}
}

// extractionError maps pipeline errors onto HTTP responses, preserving the
// status code carried by custom errors.
func extractionError(c echo.Context, requestID string, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()

	var customErr *utils.CustomError
	if errors.As(err, &customErr) {
		status = customErr.Code
	}

	return c.JSON(status, models.ErrorResponse{
		Error:     "extraction_failed",
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now(),
	})
}
