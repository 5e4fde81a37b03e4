package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON shape of a rejection when structured error bodies are enabled.
type ErrorBody struct {
	Error         string `json:"error"`
	Status        int    `json:"status"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// WriteJSON serializes data to JSON and writes it with the given status code.
//
// Content-Type is set to "application/json". If marshaling fails the client
// gets a 500 and the wrapped error is returned.
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

// WriteError writes a bare status when structured is false, or an
// [ErrorBody] with the status text and correlation id otherwise.
func WriteError(w http.ResponseWriter, statusCode int, structured bool, correlationID string) error {
	if !structured {
		w.WriteHeader(statusCode)
		return nil
	}

	_, err := WriteJSON(w, ErrorBody{
		Error:         http.StatusText(statusCode),
		Status:        statusCode,
		CorrelationID: correlationID,
	}, statusCode)
	return err
}
