package utils

import (
	"strconv"
	"time"
)

// ===================================================================
// RESPONSE HELPERS
// ===================================================================

// StandardResponse represents a standard API response envelope.
type StandardResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResponse creates a success response.
func SuccessResponse(message string, data interface{}) StandardResponse {
	return StandardResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// ErrorResponse creates an error response.
func ErrorResponse(message string) StandardResponse {
	return StandardResponse{
		Status:  "error",
		Message: message,
	}
}

// ErrorResponseWithCode creates an error response carrying a stable
// machine-readable error code.
func ErrorResponseWithCode(message, code string) StandardResponse {
	return StandardResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	}
}

// ListResponse represents a list response.
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

// CreateListResponse creates a standardized list response.
func CreateListResponse(items interface{}, count int) ListResponse {
	return ListResponse{Items: items, Count: count}
}

// ===================================================================
// QUERY PARAMETER HELPERS
// ===================================================================

// GetBoolOrDefault returns the parsed value if valid, otherwise defaultValue.
func GetBoolOrDefault(valueStr string, defaultValue bool) bool {
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetFloatOrDefault returns the parsed value if valid, otherwise defaultValue.
func GetFloatOrDefault(valueStr string, defaultValue float64) float64 {
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// ===================================================================
// TIME HELPERS
// ===================================================================

// GetUnixTimestamp returns current Unix timestamp.
func GetUnixTimestamp() int64 {
	return time.Now().Unix()
}
