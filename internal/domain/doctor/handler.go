package doctor

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/auth"
	"github.com/medtrack/medtrack/internal/platform/httputil"
	"github.com/medtrack/medtrack/pkg/envelope"
)

type Handler struct {
	svc    *Service
	authMW echo.MiddlewareFunc
}

// NewHandler builds the doctor handler. authMW guards the profile routes.
func NewHandler(svc *Service, authMW echo.MiddlewareFunc) *Handler {
	return &Handler{svc: svc, authMW: authMW}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/doctor/register", h.Register)
	g.POST("/doctor/login", h.Login)

	profile := g.Group("/doctor/profile", h.authMW)
	profile.GET("/:id", h.GetProfile)
	profile.PUT("/:id", h.UpdateProfile)
	profile.DELETE("/:id", h.Delete)
}

type registerResponse struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	DoctorID int64   `json:"doctorId"`
	Data     Profile `json:"data"`
}

type loginResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Doctor    Profile   `json:"doctor"`
}

func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	d, err := h.svc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, registerResponse{
		Success:  true,
		Message:  "Doctor registered successfully",
		DoctorID: d.ID,
		Data:     d.Profile(),
	})
}

func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	res, err := h.svc.Login(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		Success:   true,
		Message:   "Doctor logged in",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		Doctor:    res.Doctor.Profile(),
	})
}

func (h *Handler) GetProfile(c echo.Context) error {
	id, err := h.ownID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.OK(d.Profile()))
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	id, err := h.ownID(c)
	if err != nil {
		return err
	}
	var req UpdateProfileRequest
	if err := httputil.Bind(c, &req); err != nil {
		return err
	}
	d, err := h.svc.UpdateProfile(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.WithData("Profile updated successfully", d.Profile()))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := h.ownID(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope.Message("Doctor deleted successfully"))
}

// ownID parses :id and requires it to match the authenticated doctor.
func (h *Handler) ownID(c echo.Context) (int64, error) {
	id, err := httputil.PathID(c, "id")
	if err != nil {
		return 0, err
	}
	tokenID, ok := auth.DoctorIDFromContext(c.Request().Context())
	if !ok || tokenID != id {
		return 0, apperr.Auth("Token does not match this doctor")
	}
	return id, nil
}
