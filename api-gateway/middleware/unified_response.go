package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UnifiedResponse represents the standard API response format
type UnifiedResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Details string `json:"details"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID     string `json:"request_id"`
	Timestamp     string `json:"timestamp"`
	ExecutionTime string `json:"execution_time"`
	Method        string `json:"method"`
	Path          string `json:"path"`
}

// responseWriter wraps gin.ResponseWriter to capture response
type responseWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return len(b), nil
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
}

// UnifiedResponseMiddleware transforms all service responses to the
// gateway's envelope format.
func UnifiedResponseMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		// WebSocket upgrades and infrastructure paths pass through untouched
		if shouldSkipUnifiedResponse(c) {
			c.Next()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
			status:         200,
		}
		c.Writer = w

		c.Next()

		executionTime := time.Since(startTime)
		originalResponse := w.body.String()
		statusCode := w.status

		unified := transformToUnifiedResponse(c, originalResponse, statusCode, requestID, executionTime)

		w.ResponseWriter.Header().Set("Content-Type", "application/json")
		w.ResponseWriter.WriteHeader(statusCode)
		json.NewEncoder(w.ResponseWriter).Encode(unified)
	}
}

// transformToUnifiedResponse converts original response to unified format
func transformToUnifiedResponse(c *gin.Context, originalResponse string, statusCode int, requestID string, executionTime time.Duration) UnifiedResponse {
	isSuccess := statusCode >= 200 && statusCode < 300

	unified := UnifiedResponse{
		Success: isSuccess,
		Message: getAutoMessage(c.Request.Method, statusCode, isSuccess),
		Meta: &MetaInfo{
			RequestID:     requestID,
			Timestamp:     time.Now().UTC().Format(time.RFC3339),
			ExecutionTime: fmt.Sprintf("%dms", executionTime.Milliseconds()),
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
		},
	}

	if originalResponse != "" {
		var originalData interface{}
		if err := json.Unmarshal([]byte(originalResponse), &originalData); err == nil {
			if isSuccess {
				if dataMap, ok := originalData.(map[string]interface{}); ok {
					if data, exists := dataMap["data"]; exists {
						unified.Data = data
					} else {
						unified.Data = originalData
					}
					if msg, exists := dataMap["message"]; exists {
						if msgStr, ok := msg.(string); ok && msgStr != "" {
							unified.Message = msgStr
						}
					}
				} else {
					unified.Data = originalData
				}
			} else {
				if errorMap, ok := originalData.(map[string]interface{}); ok {
					if errMsg, exists := errorMap["error"]; exists {
						unified.Error = &ErrorInfo{
							Code:    getErrorCode(statusCode),
							Details: fmt.Sprintf("%v", errMsg),
						}
					} else {
						unified.Error = &ErrorInfo{
							Code:    getErrorCode(statusCode),
							Details: originalResponse,
						}
					}
				} else {
					unified.Error = &ErrorInfo{
						Code:    getErrorCode(statusCode),
						Details: originalResponse,
					}
				}
			}
		}
	}

	return unified
}

// getAutoMessage generates appropriate success/error messages
func getAutoMessage(method string, statusCode int, isSuccess bool) string {
	if isSuccess {
		switch method {
		case "POST":
			return "Record created successfully"
		case "PUT", "PATCH":
			return "Record updated successfully"
		case "DELETE":
			return "Record deleted successfully"
		case "GET":
			return "Data retrieved successfully"
		default:
			return "Operation completed successfully"
		}
	}

	switch statusCode {
	case 400:
		return "Invalid request data"
	case 401:
		return "Authentication required"
	case 403:
		return "Permission denied"
	case 404:
		return "Resource not found"
	case 409:
		return "Resource already exists"
	case 422:
		return "Validation failed"
	case 429:
		return "Too many requests"
	case 500:
		return "Internal server error"
	default:
		return "Operation failed"
	}
}

// getErrorCode generates error codes based on status
func getErrorCode(statusCode int) string {
	switch statusCode {
	case 400:
		return "BAD_REQUEST"
	case 401:
		return "UNAUTHORIZED"
	case 403:
		return "FORBIDDEN"
	case 404:
		return "NOT_FOUND"
	case 409:
		return "CONFLICT"
	case 422:
		return "VALIDATION_ERROR"
	case 429:
		return "RATE_LIMITED"
	case 500:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// shouldSkipUnifiedResponse checks if the request path should skip unified response format
func shouldSkipUnifiedResponse(c *gin.Context) bool {
	path := c.Request.URL.Path

	excludePaths := []string{
		"/ws",
		"/docs",
		"/health",
		"/metrics",
	}

	for _, excludePath := range excludePaths {
		if strings.HasPrefix(path, excludePath) {
			return true
		}
	}

	// Swagger UI fetches raw documents, not enveloped ones
	referer := c.Request.Header.Get("Referer")
	if strings.Contains(referer, "/swagger") || strings.Contains(referer, "/docs") {
		return true
	}

	userAgent := c.Request.Header.Get("User-Agent")
	return strings.Contains(userAgent, "swagger-ui")
}
