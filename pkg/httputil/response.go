package httputil

import (
	"encoding/json"
	"net/http"
)

// MessageResponse is the body of every locally generated error
type MessageResponse struct {
	Message string `json:"message"`
}

// OKResponse acknowledges login and logout
type OKResponse struct {
	OK bool `json:"ok"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteRawJSON writes body, which must already be valid JSON, verbatim
func WriteRawJSON(w http.ResponseWriter, statusCode int, body []byte) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err := w.Write(body)
	return err
}

// WriteMessage writes {"message": msg} with the given status code
func WriteMessage(w http.ResponseWriter, statusCode int, msg string) {
	_ = WriteJSON(w, statusCode, MessageResponse{Message: msg})
}

// WriteUnauthorized writes 401 {"message":"Unauthorized"}
func WriteUnauthorized(w http.ResponseWriter) {
	WriteMessage(w, http.StatusUnauthorized, "Unauthorized")
}

// WriteInternalError writes a 500 with a fixed, caller-chosen message so
// internal error text never reaches the browser
func WriteInternalError(w http.ResponseWriter, msg string) {
	WriteMessage(w, http.StatusInternalServerError, msg)
}

// WriteNotFound writes 404 {"message":"Not found"}
func WriteNotFound(w http.ResponseWriter) {
	WriteMessage(w, http.StatusNotFound, "Not found")
}

// WriteOK writes 200 {"ok":true}
func WriteOK(w http.ResponseWriter) {
	_ = WriteJSON(w, http.StatusOK, OKResponse{OK: true})
}

// WriteNoContent writes a 204 with no body
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
