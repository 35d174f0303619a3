package domain

import (
	"errors"
	"net/http"
)

// Error es un error de negocio con el status HTTP con el que se responde.
// Solo el middleware de errores lo traduce a una respuesta.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(status int, message string) *Error {
	return &Error{StatusCode: status, Message: message}
}

// Validation corresponde a entrada faltante o mal formada.
func Validation(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}

// Authentication corresponde a credenciales invalidas o sesion ausente.
func Authentication(message string) *Error {
	return NewError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return NewError(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// Conflict corresponde a una clave unica duplicada.
func Conflict(message string) *Error {
	return NewError(http.StatusConflict, message)
}

func TooManyRequests(message string) *Error {
	return NewError(http.StatusTooManyRequests, message)
}

// StatusOf devuelve el status asociado a err, 500 si no es un *Error.
func StatusOf(err error) int {
	var de *Error
	if errors.As(err, &de) && de.StatusCode != 0 {
		return de.StatusCode
	}
	return http.StatusInternalServerError
}
