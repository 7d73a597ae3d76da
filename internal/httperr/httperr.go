package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidRequest   = "invalid_request"
	CodeMissingField     = "missing_field"
	CodeInvalidFormat    = "invalid_format"
	CodePastDateTime     = "past_date_time"
	CodePastAppointment  = "past_appointment"
	CodeForbidden        = "forbidden"
	CodeUnauthorized     = "unauthorized"
	CodeClientNotFound   = "client_not_found"
	CodeServiceNotFound  = "service_not_found"
	CodeProviderNotFound = "provider_not_found"
	CodeNotFound         = "not_found"
	CodeSlotConflict     = "slot_conflict"
	CodeEmailTaken       = "email_taken"
	CodePersistence      = "persistence_error"
	CodeInternal         = "internal_error"
)

var statusByCode = map[string]int{
	CodeInvalidRequest:   http.StatusBadRequest,
	CodeMissingField:     http.StatusBadRequest,
	CodeInvalidFormat:    http.StatusBadRequest,
	CodePastDateTime:     http.StatusBadRequest,
	CodePastAppointment:  http.StatusBadRequest,
	CodeUnauthorized:     http.StatusUnauthorized,
	CodeForbidden:        http.StatusForbidden,
	CodeClientNotFound:   http.StatusNotFound,
	CodeServiceNotFound:  http.StatusNotFound,
	CodeProviderNotFound: http.StatusNotFound,
	CodeNotFound:         http.StatusNotFound,
	CodeSlotConflict:     http.StatusConflict,
	CodeEmailTaken:       http.StatusConflict,
	CodePersistence:      http.StatusInternalServerError,
	CodeInternal:         http.StatusInternalServerError,
}

type HTTPError struct {
	Status  string `json:"status"`
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// StatusFor devolve o status HTTP de um código de negócio (400 para códigos desconhecidos).
func StatusFor(code string) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusBadRequest
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

// Respond traduz qualquer erro para a resposta estruturada.
// Detalhes internos só aparecem fora do modo release.
func Respond(c *gin.Context, err error) {
	body := HTTPError{Status: "error"}
	status := http.StatusInternalServerError

	var be BusinessError
	if errors.As(err, &be) {
		status = StatusFor(be.Code)
		body.Code = be.Code
		body.Message = be.Message
		if body.Message == "" {
			body.Message = be.Code
		}
	} else {
		body.Code = CodeInternal
		body.Message = "Erro interno do servidor."
	}

	if gin.Mode() != gin.ReleaseMode && err != nil {
		if be.Err != nil || status >= http.StatusInternalServerError {
			body.Detail = err.Error()
		}
	}

	c.JSON(status, body)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}
