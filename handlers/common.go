package handlers

import (
	"encoding/json"
	"net/http"

	logger "github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// errorResponse is the wire shape of every error body.
type errorResponse struct {
	Error string `json:"error"`
}

// logRequest logs a request-scoped message with the method and path
// attached. Shared by all handlers to keep the log shape uniform.
func logRequest(r *http.Request, level string, message string, fields ...zap.Field) {
	logMsg := r.Method + " " + r.URL.Path
	if message != "" {
		logMsg += " - " + message
	}

	allFields := append([]zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}, fields...)

	switch level {
	case "info":
		logger.Info(logMsg, allFields...)
	case "error":
		logger.Error(logMsg, allFields...)
	case "debug":
		logger.Debug(logMsg, allFields...)
	}
}

// parseJSONBody decodes the request body into v.
func parseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// respondJSON writes data as a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// respondError writes an {"error": message} body with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, errorResponse{Error: message})
}
