package prescription

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
	g.POST("/prescriptions", h.Create)
	g.GET("/prescriptions", h.List)
	g.GET("/prescriptions/patient/:patientId", h.ListWithDoses)
	g.GET("/prescriptions/patientprescription/:id", h.ListByPatient)
	g.GET("/prescriptions/:id", h.Get)
	g.PUT("/prescriptions/:id", h.Update)
	g.DELETE("/prescriptions/:id", h.Delete)

	g.POST("/pdose", h.CreateDose)
	g.GET("/pdose", h.ListDoses)
	g.GET("/pdose/prescription/:presId", h.ListDosesByPrescription)
	g.GET("/pdose/:id", h.GetDose)
	g.PUT("/pdose/:id", h.UpdateDose)
	g.DELETE("/pdose/:id", h.DeleteDose)
}

type patientPrescriptionsResponse struct {
	Success bool `json:"success"`
	*PatientPrescriptions
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
	return c.JSON(http.StatusCreated, envelope.WithData("Prescription created successfully", p))
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.NewList(items, len(items)))
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	resp := envelope.NewList(items, len(items))
	resp.Message = "Prescriptions fetched successfully"
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListWithDoses(c echo.Context) error {
	patientID, err := httputil.PathID(c, "patientId")
	if err != nil {
		return err
	}
	out, err := h.svc.PatientPrescriptionsWithDoses(c.Request().Context(), patientID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patientPrescriptionsResponse{Success: true, PatientPrescriptions: out})
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
	return c.JSON(http.StatusOK, envelope.WithData("Prescription updated successfully", p))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.Message("Prescription deleted successfully"))
}
