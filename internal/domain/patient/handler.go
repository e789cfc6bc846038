package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/httputil"
	"github.com/medtrack/medtrack/pkg/envelope"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/patient", h.Create)
	g.GET("/patient", h.List)
	g.GET("/patient/clinic/:id", h.ListByClinic)
	g.GET("/patient/doctor/:doctorId", h.ListByDoctor)
	g.GET("/patient/:id", h.Get)
	g.PUT("/patient/:id", h.Update)
	g.DELETE("/patient/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope.WithData("Patient added successfully", p))
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), ListFilter{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.NewList(items, len(items)))
}

func (h *Handler) ListByClinic(c echo.Context) error {
	clinicID, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListByClinic(c.Request().Context(), clinicID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.NewList(items, len(items)))
}

func (h *Handler) ListByDoctor(c echo.Context) error {
	doctorID, err := httputil.PathID(c, "doctorId")
	if err != nil {
		return err
	}
	items, err := h.svc.ListByDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.NewList(items, len(items)))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.OK(p))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	p, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.WithData("Patient updated successfully", p))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.Message("Patient deleted successfully"))
}
