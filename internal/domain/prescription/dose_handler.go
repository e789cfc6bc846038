package prescription

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/httputil"
	"github.com/medtrack/medtrack/pkg/envelope"
)

func (h *Handler) CreateDose(c echo.Context) error {
	var req CreateDoseRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	d, err := h.svc.CreateDose(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, envelope.WithData("Dose created successfully", d))
}

// ListDoses lists all doses, or one prescription's doses with ?pres_id=.
func (h *Handler) ListDoses(c echo.Context) error {
	presID, ok, err := httputil.QueryID(c, "pres_id")
	if err != nil {
		return err
	}
	var filter *int64
	if ok {
		filter = &presID
	}
	items, err := h.svc.ListDoses(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.NewList(items, len(items)))
}

func (h *Handler) ListDosesByPrescription(c echo.Context) error {
	presID, err := httputil.PathID(c, "presId")
	if err != nil {
		return err
	}
	items, err := h.svc.ListDosesByPrescription(c.Request().Context(), presID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.NewList(items, len(items)))
}

func (h *Handler) GetDose(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.svc.GetDose(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.OK(d))
}

func (h *Handler) UpdateDose(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	var req UpdateDoseRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	d, err := h.svc.UpdateDose(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.WithData("Dose updated successfully", d))
}

func (h *Handler) DeleteDose(c echo.Context) error {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDose(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.Message("Dose deleted successfully"))
}
