package prescription

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medtrack/medtrack/internal/platform/apperr"
	"github.com/medtrack/medtrack/internal/platform/middleware"
)

func newTestHandler() (*Handler, *echo.Echo, *fixture) {
	f := newFixture()
	return NewHandler(f.svc), echo.New(), f
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func withParam(c echo.Context, name string, id int64) echo.Context {
	c.SetParamNames(name)
	c.SetParamValues(strconv.FormatInt(id, 10))
	return c
}

func TestHandler_Create(t *testing.T) {
	h, e, _ := newTestHandler()

	body := `{"patient_id":1,"date":"2024-03-10","dieases":"flu","symptoms":"fever","payment_mode":"online","payment_amount":350.5}`
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(jsonRequest(http.MethodPost, "/prescriptions", body), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	out := rec.Body.String()
	for _, want := range []string{`"message":"Prescription created successfully"`, `"payment_amount":350.5`, `"date":"2024-03-10"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestHandler_Create_BadPaymentMode(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"patient_id":1,"date":"2024-03-10","dieases":"flu","symptoms":"fever","payment_mode":"card"}`
	err := h.Create(e.NewContext(jsonRequest(http.MethodPost, "/prescriptions", body), httptest.NewRecorder()))
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_ListByPatient(t *testing.T) {
	h, e, f := newTestHandler()
	f.createPrescription(t, 1, "flu")

	rec := httptest.NewRecorder()
	c := withParam(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), "id", 1)
	if err := h.ListByPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := rec.Body.String()
	if !strings.Contains(out, `"message":"Prescriptions fetched successfully"`) || !strings.Contains(out, `"Patient":{`) {
		t.Errorf("unexpected body %s", out)
	}
}

func TestHandler_ListWithDoses(t *testing.T) {
	h, e, f := newTestHandler()
	p := f.createPrescription(t, 1, "flu")
	if _, err := f.svc.CreateDose(context.Background(), validDose(p.ID)); err != nil {
		t.Fatalf("create dose: %v", err)
	}

	rec := httptest.NewRecorder()
	c := withParam(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec), "patientId", 1)
	if err := h.ListWithDoses(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Success       bool  `json:"success"`
		PatientID     int64 `json:"patientId"`
		Prescriptions []struct {
			Disease string `json:"disease"`
			Doses   []struct {
				MedicineName string `json:"medicine_name"`
			} `json:"doses"`
		} `json:"prescriptions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.PatientID != 1 || len(resp.Prescriptions) != 1 {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
	if resp.Prescriptions[0].Disease != "flu" || len(resp.Prescriptions[0].Doses) != 1 {
		t.Errorf("unexpected prescription %+v", resp.Prescriptions[0])
	}
}

func TestHandler_ListWithDoses_NoPrescriptions(t *testing.T) {
	h, e, _ := newTestHandler()
	c := withParam(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()), "patientId", 2)
	err := h.ListWithDoses(c)
	if e2, ok := apperr.As(err); !ok || e2.Message != "No prescriptions found for this patient" {
		t.Errorf("expected empty-list not found, got %v", err)
	}
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	h, e, f := newTestHandler()
	p := f.createPrescription(t, 1, "flu")

	rec := httptest.NewRecorder()
	c := withParam(e.NewContext(jsonRequest(http.MethodPut, "/", `{"symptoms":"cough"}`), rec), "id", p.ID)
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"symptoms":"cough"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	if err := h.Delete(withParam(e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec), "id", p.ID)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Prescription deleted successfully") {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestHandler_CreateDose(t *testing.T) {
	h, e, f := newTestHandler()
	p := f.createPrescription(t, 1, "flu")

	body := `{"pres_id":` + strconv.FormatInt(p.ID, 10) + `,"days":3,"medicine_name":"ibuprofen","time_of_day":"afternoon","meal_time":"after"}`
	rec := httptest.NewRecorder()
	if err := h.CreateDose(e.NewContext(jsonRequest(http.MethodPost, "/pdose", body), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := rec.Body.String()
	if rec.Code != http.StatusCreated || !strings.Contains(out, `"medicine_type":"capsule"`) || !strings.Contains(out, `"quantity":1`) {
		t.Errorf("unexpected response %d %s", rec.Code, out)
	}
}

func TestHandler_ListDoses_QueryFilter(t *testing.T) {
	h, e, f := newTestHandler()
	p1 := f.createPrescription(t, 1, "flu")
	p2 := f.createPrescription(t, 1, "cold")
	f.svc.CreateDose(context.Background(), validDose(p1.ID))
	f.svc.CreateDose(context.Background(), validDose(p2.ID))

	rec := httptest.NewRecorder()
	target := "/pdose?pres_id=" + strconv.FormatInt(p2.ID, 10)
	if err := h.ListDoses(e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	bad := e.NewContext(httptest.NewRequest(http.MethodGet, "/pdose?pres_id=abc", nil), httptest.NewRecorder())
	if err := h.ListDoses(bad); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestHandler_ListDosesByPrescription_Empty(t *testing.T) {
	h, e, f := newTestHandler()
	p := f.createPrescription(t, 1, "flu")

	c := withParam(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()), "presId", p.ID)
	if err := h.ListDosesByPrescription(c); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestHandler_Routes(t *testing.T) {
	h, e, f := newTestHandler()
	e.HTTPErrorHandler = middleware.ErrorHandler(zerolog.Nop())
	h.RegisterRoutes(e.Group(""))
	p := f.createPrescription(t, 1, "flu")

	tests := []struct {
		path string
		want int
	}{
		{"/prescriptions", http.StatusOK},
		{"/prescriptions/" + strconv.FormatInt(p.ID, 10), http.StatusOK},
		{"/prescriptions/patientprescription/1", http.StatusOK},
		{"/prescriptions/patient/1", http.StatusOK},
		{"/prescriptions/patient/2", http.StatusNotFound},
		{"/prescriptions/abc", http.StatusBadRequest},
		{"/pdose", http.StatusOK},
		{"/pdose/77", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("GET %s: expected %d, got %d (%s)", tt.path, tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}
