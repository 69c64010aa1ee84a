// Package handlers содержит общие помощники для HTTP-ответов.
// Каждая ошибка отдаётся со структурным кодом, чтобы витрина и панель
// могли ветвиться по нему, не разбирая текст сообщения.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// Коды ошибок API
const (
	CodeInvalidInput    = "invalid_input"
	CodeFeatureDisabled = "feature_disabled"
	CodeSlotUnavailable = "slot_unavailable"
	CodeInvalidStaff    = "invalid_staff"
	CodeInvalidState    = "invalid_transition"
	CodeTerminalState   = "terminal_state"
	CodeNotFound        = "not_found"
	CodeAccessDenied    = "access_denied"
	CodeUnauthorized    = "unauthorized"
	CodeRateLimited     = "rate_limited"
	CodeInternalError   = "internal_error"
)

const maxBodySize = 1 << 20 // 1 MB

// ErrorResponse стандартное тело ошибки API
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody код и сообщение ошибки
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в out, ограничивая его размер
func DecodeJSON(r *http.Request, out interface{}) error {
	defer io.Copy(io.Discard, r.Body) //nolint:errcheck

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()

	if err := dec.Decode(out); err != nil {
		return err
	}

	// Тело должно содержать ровно один JSON-объект
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if payload != nil {
		json.NewEncoder(w).Encode(payload) //nolint:errcheck
	}
}

// RespondError пишет ошибку со структурным кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondBadRequest пишет 400 с кодом invalid_input
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeInvalidInput, message)
}

// RespondNotFound пишет 404 с кодом not_found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden пишет 403 с указанным кодом
func RespondForbidden(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusForbidden, code, message)
}

// RespondUnauthorized пишет 401 с кодом unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondInternalError пишет 500 с кодом internal_error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "internal server error")
}
