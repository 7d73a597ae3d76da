package handlers

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/infra/repository"
)

// FlexID aceita número ou string numérica. Valores não numéricos viram zero,
// que os casos de uso tratam como ausentes.
type FlexID uint

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	n, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexID(n)
	return nil
}

func (f *FlexID) Ptr() *uint {
	if f == nil {
		return nil
	}
	v := uint(*f)
	return &v
}

// pathID lê um id numérico positivo do path; responde 400 quando inválido.
func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "ID inválido.")
		return 0, false
	}
	return uint(n), true
}

func queryID(c *gin.Context, name string) (*uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Parâmetro "+name+" inválido.")
		return nil, false
	}
	v := uint(n)
	return &v, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.Respond(c, httperr.New(httperr.CodeInvalidRequest, "Dados inválidos.").Wrap(err))
		return false
	}
	return true
}

// dbError traduz erros do gorm usados diretamente pelos handlers de CRUD.
func dbError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		httperr.NotFound(c, httperr.CodeNotFound, notFoundMsg)
	case repository.IsUniqueViolation(err):
		httperr.Conflict(c, httperr.CodeEmailTaken, "Email já cadastrado.")
	default:
		httperr.Respond(c, httperr.New(httperr.CodePersistence, "Erro ao acessar o banco de dados.").Wrap(err))
	}
}
