package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agendamento-api/internal/domain/appointment"
	"github.com/BruksfildServices01/agendamento-api/internal/dto"
	"github.com/BruksfildServices01/agendamento-api/internal/httperr"
	"github.com/BruksfildServices01/agendamento-api/internal/httpresp"
	"github.com/BruksfildServices01/agendamento-api/internal/middleware"
	usecase "github.com/BruksfildServices01/agendamento-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	uc  *usecase.Services
	loc *time.Location
}

func NewAppointmentHandler(uc *usecase.Services, loc *time.Location) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, loc: loc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	DateTime  string `json:"dataHora"`
	ClientID  FlexID `json:"clienteId"`
	ServiceID FlexID `json:"servicoId"`
}

type UpdateAppointmentRequest struct {
	DateTime  *string `json:"dataHora"`
	ClientID  *FlexID `json:"clienteId"`
	ServiceID *FlexID `json:"servicoId"`
	Available *bool   `json:"disponivel"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), usecase.CreateInput{
		Actor:     middleware.Actor(c),
		DateTime:  req.DateTime,
		ClientID:  uint(req.ClientID),
		ServiceID: uint(req.ServiceID),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap, h.loc))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Update.Execute(c.Request.Context(), usecase.UpdateInput{
		Actor:     middleware.Actor(c),
		ID:        id,
		DateTime:  req.DateTime,
		ClientID:  req.ClientID.Ptr(),
		ServiceID: req.ServiceID.Ptr(),
		Available: req.Available,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.loc))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.Actor(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Agendamento deletado com sucesso")
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), middleware.Actor(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentDTO(ap, h.loc))
}

// List aceita clienteId, servicoId, prestadorId, disponivel e o intervalo de/ate
// no formato DD/MM/YYYY:HH:mm.
func (h *AppointmentHandler) List(c *gin.Context) {
	var f domain.ListFilter
	var ok bool

	if f.ClientID, ok = queryID(c, "clienteId"); !ok {
		return
	}
	if f.ServiceID, ok = queryID(c, "servicoId"); !ok {
		return
	}
	if f.ProviderID, ok = queryID(c, "prestadorId"); !ok {
		return
	}

	if raw := c.Query("disponivel"); raw != "" {
		v := raw == "true"
		f.Available = &v
	}

	for param, dst := range map[string]**time.Time{"de": &f.From, "ate": &f.To} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		t, err := domain.ParseDateTime(raw, h.loc)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		*dst = &t
	}

	apps, err := h.uc.List.Execute(c.Request.Context(), middleware.Actor(c), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewAppointmentList(apps, h.loc))
}
