package clinic

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
	g.POST("/clinics", h.Create)
	g.GET("/clinics", h.List)
	g.GET("/clinics/doctors/:doctorId", h.ListByDoctor)
	g.GET("/clinics/:id", h.Get)
	g.PUT("/clinics/:id", h.Update)
	g.DELETE("/clinics/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	cl, err := h.svc.Create(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope.WithData("Clinic created successfully", cl))
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context(), ListFilter{})
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
	cl, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.OK(cl))
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
	cl, err := h.svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.WithData("Clinic updated successfully", cl))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.Message("Clinic deleted successfully"))
}
