package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/httpresp"
	"github.com/BruksfildServices01/agendamento-api/internal/middleware"
	"github.com/BruksfildServices01/agendamento-api/internal/models"
	"github.com/BruksfildServices01/agendamento-api/internal/storage"
)

type ServiceHandler struct {
	db     *gorm.DB
	images *storage.ServiceImages
}

func NewServiceHandler(db *gorm.DB, images *storage.ServiceImages) *ServiceHandler {
	return &ServiceHandler{db: db, images: images}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"nome" binding:"required,max=100"`
	Description *string `json:"descricao" binding:"omitempty,max=255"`
	Image       *string `json:"imagem"`
	Price       float64 `json:"preco" binding:"gte=0"`
	DurationMin int     `json:"duracao" binding:"required,gt=0"`
	ProviderID  uint    `json:"prestadorId" binding:"required"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"nome" binding:"omitempty,max=100"`
	Description *string  `json:"descricao" binding:"omitempty,max=255"`
	Image       *string  `json:"imagem"`
	Price       *float64 `json:"preco" binding:"omitempty,gte=0"`
	DurationMin *int     `json:"duracao" binding:"omitempty,gt=0"`
}

// --------- Helpers ---------

func (h *ServiceHandler) storeImage(c *gin.Context, payload *string) (*string, bool) {
	if payload == nil {
		return nil, true
	}
	url, err := h.images.Store(c.Request.Context(), *payload)
	if errors.Is(err, storage.ErrInvalidImage) {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Imagem inválida.")
		return nil, false
	}
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return &url, true
}

// ownsService: ADMIN ou o prestador dono do serviço.
func ownsService(c *gin.Context, svc *models.Service) bool {
	a := middleware.Actor(c)
	if a.Role == models.RoleAdmin || (a.Role == models.RoleProvider && a.ID == svc.ProviderID) {
		return true
	}
	httperr.Forbidden(c, httperr.CodeForbidden, "Apenas o prestador do serviço pode alterá-lo.")
	return false
}

func (h *ServiceHandler) find(c *gin.Context) (*models.Service, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return nil, false
	}

	var svc models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Provider").
		First(&svc, id).Error; err != nil {
		dbError(c, err, "Serviço não encontrado.")
		return nil, false
	}
	return &svc, true
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := middleware.Actor(c)
	if actor.Role != models.RoleAdmin && actor.ID != req.ProviderID {
		httperr.Forbidden(c, httperr.CodeForbidden, "Prestadores só podem cadastrar os próprios serviços.")
		return
	}

	ctx := c.Request.Context()

	var provider models.Person
	if err := h.db.WithContext(ctx).First(&provider, req.ProviderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeProviderNotFound, "Prestador não encontrado.")
			return
		}
		dbError(c, err, "Prestador não encontrado.")
		return
	}

	image, ok := h.storeImage(c, req.Image)
	if !ok {
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		ProviderID:  provider.ID,
	}

	if err := h.db.WithContext(ctx).Create(&svc).Error; err != nil {
		dbError(c, err, "Serviço não encontrado.")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Preload("Provider").
		Order("nome ASC")

	providerID, ok := queryID(c, "prestadorId")
	if !ok {
		return
	}
	if providerID != nil {
		q = q.Where("prestador_id = ?", *providerID)
	}

	var list []models.Service
	if err := q.Find(&list).Error; err != nil {
		dbError(c, err, "Serviço não encontrado.")
		return
	}

	httpresp.List(c, list)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok || !ownsService(c, svc) {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = req.Description
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMin != nil {
		svc.DurationMin = *req.DurationMin
	}
	if req.Image != nil {
		image, ok := h.storeImage(c, req.Image)
		if !ok {
			return
		}
		svc.Image = image
	}

	if err := h.db.WithContext(c.Request.Context()).
		Omit("Provider", "Appointments").
		Save(svc).Error; err != nil {
		dbError(c, err, "Serviço não encontrado.")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok || !ownsService(c, svc) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, svc.ID).Error; err != nil {
		dbError(c, err, "Serviço não encontrado.")
		return
	}

	httpresp.Message(c, "Serviço deletado com sucesso")
}
