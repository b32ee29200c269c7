package web

import (
	"net/http"

	"github.com/devNatanFrei/e-commerce/internal/pkg/message"
)

// RespondOK writes a 200 response with an optional message and data payload.
func RespondOK[T any](w http.ResponseWriter, msg *string, data T) {
	OK(w, http.StatusOK, msg, &data)
}

// RespondCreated writes a 201 response with an optional message and data payload.
func RespondCreated[T any](w http.ResponseWriter, msg *string, data T) {
	OK(w, http.StatusCreated, msg, &data)
}

// RespondNoContent writes a 204 response without a body.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func RespondBadRequest(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusBadRequest, reason, msg, errs)
}

func RespondUnauthorized(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnauthorized, reason, msg, errs)
}

func RespondForbidden(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusForbidden, reason, msg, errs)
}

func RespondNotFound(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusNotFound, reason, msg, errs)
}

func RespondRequestTimeout(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusRequestTimeout, reason, msg, errs)
}

func RespondConflict(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusConflict, reason, msg, errs)
}

func RespondRequestEntityTooLarge(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusRequestEntityTooLarge, reason, msg, errs)
}

func RespondUnprocessableEntity(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusUnprocessableEntity, reason, msg, errs)
}

func RespondServiceUnavailable(w http.ResponseWriter, reason error, msg string, errs map[string]string) {
	Fail(w, http.StatusServiceUnavailable, reason, msg, errs)
}

// RespondInternalServerError writes a 500 response with a generic message so
// internal details never leak to the client.
func RespondInternalServerError(w http.ResponseWriter, reason error) {
	Fail(w, http.StatusInternalServerError, reason, message.ServerError, nil)
}
