package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/auth"
	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/httpresp"
	"github.com/BruksfildServices01/agendamento-api/internal/middleware"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/validators"
)

type PersonHandler struct {
	db               *gorm.DB
	checkEmailDomain bool
}

func NewPersonHandler(db *gorm.DB, checkEmailDomain bool) *PersonHandler {
	return &PersonHandler{db: db, checkEmailDomain: checkEmailDomain}
}

// --------- Requests ---------

type CreatePersonRequest struct {
	Name      string  `json:"nome" binding:"required,max=100"`
	Email     string  `json:"email" binding:"required,max=100"`
	Password  string  `json:"senha" binding:"required,min=6"`
	BirthDate *string `json:"dataNascimento" binding:"omitempty,birthdate"`
	Phone     *string `json:"telefone" binding:"omitempty,max=20"`
	Address   *string `json:"endereco" binding:"omitempty,max=255"`
	Role      string  `json:"role" binding:"omitempty,oneof=CLIENTE PRESTADOR"`
}

type UpdatePersonRequest struct {
	Name      *string `json:"nome" binding:"omitempty,max=100"`
	Email     *string `json:"email" binding:"omitempty,max=100"`
	Password  *string `json:"senha" binding:"omitempty,min=6"`
	BirthDate *string `json:"dataNascimento" binding:"omitempty,birthdate"`
	Phone     *string `json:"telefone" binding:"omitempty,max=20"`
	Address   *string `json:"endereco" binding:"omitempty,max=255"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,role"`
}

// --------- Helpers ---------

func (h *PersonHandler) validEmail(c *gin.Context, email string) bool {
	if !validators.IsEmailFormatValid(email) {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Formato de email inválido.")
		return false
	}
	if h.checkEmailDomain && !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return false
	}
	return true
}

func birthDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	t, err := validators.ParseBirthDate(*raw)
	if err != nil {
		return nil
	}
	return &t
}

// canManage: o próprio usuário ou ADMIN.
func canManage(c *gin.Context, personID uint) bool {
	a := middleware.Actor(c)
	if a.Role == models.RoleAdmin || a.ID == personID {
		return true
	}
	httperr.Forbidden(c, httperr.CodeForbidden, "Operação não permitida para este usuário.")
	return false
}

// --------- Handlers ---------

func (h *PersonHandler) Create(c *gin.Context) {
	var req CreatePersonRequest
	if !bindJSON(c, &req) {
		return
	}

	email := validators.NormalizeEmail(req.Email)
	if !h.validEmail(c, email) {
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	role := models.RoleClient
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	p := models.Person{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		BirthDate:    birthDate(req.BirthDate),
		Phone:        req.Phone,
		Address:      req.Address,
		Role:         role,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	httpresp.Created(c, p)
}

func (h *PersonHandler) List(c *gin.Context) {
	h.listByRole(c, "")
}

func (h *PersonHandler) ListProviders(c *gin.Context) {
	h.listByRole(c, models.RoleProvider)
}

func (h *PersonHandler) ListClients(c *gin.Context) {
	h.listByRole(c, models.RoleClient)
}

func (h *PersonHandler) listByRole(c *gin.Context, role models.Role) {
	q := h.db.WithContext(c.Request.Context()).Order("nome ASC")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if role == models.RoleProvider {
		q = q.Preload("Services")
	}

	var people []models.Person
	if err := q.Find(&people).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	httpresp.List(c, people)
}

func (h *PersonHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var p models.Person
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		First(&p, id).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	httpresp.OK(c, p)
}

func (h *PersonHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !canManage(c, id) {
		return
	}

	var req UpdatePersonRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var p models.Person
	if err := h.db.WithContext(ctx).First(&p, id).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Email != nil {
		email := validators.NormalizeEmail(*req.Email)
		if !h.validEmail(c, email) {
			return
		}
		p.Email = email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		p.PasswordHash = hash
	}
	if req.BirthDate != nil {
		p.BirthDate = birthDate(req.BirthDate)
	}
	if req.Phone != nil {
		p.Phone = req.Phone
	}
	if req.Address != nil {
		p.Address = req.Address
	}

	if err := h.db.WithContext(ctx).Omit("Services", "Appointments").Save(&p).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	httpresp.OK(c, p)
}

func (h *PersonHandler) UpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var p models.Person
	if err := h.db.WithContext(ctx).First(&p, id).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	if err := h.db.WithContext(ctx).Model(&p).Update("role", models.Role(req.Role)).Error; err != nil {
		dbError(c, err, "Pessoa não encontrada.")
		return
	}

	httpresp.OK(c, p)
}

func (h *PersonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok || !canManage(c, id) {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Person{}, id)
	if res.Error != nil {
		dbError(c, res.Error, "Pessoa não encontrada.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, httperr.CodeNotFound, "Pessoa não encontrada.")
		return
	}

	httpresp.Message(c, "Pessoa deletada com sucesso")
}
