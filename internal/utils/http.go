// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/love-health/models"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// NewEnvelope builds the response body shared by every API endpoint.
// Success is derived from the status code.
func NewEnvelope(statusCode int, message string, data any) models.Envelope {
	return models.Envelope{
		Code:      statusCode,
		Success:   statusCode >= 200 && statusCode < 300,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// WriteEnvelope writes data wrapped in a [models.Envelope].
func WriteEnvelope(w http.ResponseWriter, statusCode int, message string, data any) (int, error) {
	return WriteJSON(w, NewEnvelope(statusCode, message, data), statusCode)
}
