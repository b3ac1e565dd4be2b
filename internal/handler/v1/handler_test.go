package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rxtrack/rxtrack-api/config"
	"github.com/rxtrack/rxtrack-api/internal/domain"
	"github.com/rxtrack/rxtrack-api/internal/domain/record"
	"github.com/rxtrack/rxtrack-api/internal/repository"
	"github.com/rxtrack/rxtrack-api/internal/service"
	"github.com/rxtrack/rxtrack-api/pkg/auth"
)

// memStore is a minimal in-memory Repository for wiring real handlers in
// tests.
type memStore[T any, PT record.Entity[T]] struct {
	nextID int
	recs   map[int]*T
}

func newMemStore[T any, PT record.Entity[T]]() *memStore[T, PT] {
	return &memStore[T, PT]{recs: make(map[int]*T)}
}

func (m *memStore[T, PT]) Insert(_ context.Context, rec *T) error {
	m.nextID++
	PT(rec).SetID(m.nextID)
	clone := *rec
	m.recs[m.nextID] = &clone
	return nil
}

func (m *memStore[T, PT]) Upsert(_ context.Context, rec *T) error {
	clone := *rec
	m.recs[PT(rec).GetID()] = &clone
	return nil
}

func (m *memStore[T, PT]) GetByID(_ context.Context, id int) (*T, error) {
	rec, ok := m.recs[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (m *memStore[T, PT]) ListAll(_ context.Context) ([]T, error) {
	var out []T
	for _, rec := range m.recs {
		out = append(out, *rec)
	}
	return out, nil
}

func (m *memStore[T, PT]) FindByPatientName(_ context.Context, name string) ([]T, error) {
	var out []T
	for _, rec := range m.recs {
		if PT(rec).RecordFields().PatientName == name {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore[T, PT]) FindByPatientGender(_ context.Context, gender string) ([]T, error) {
	var out []T
	for _, rec := range m.recs {
		if PT(rec).RecordFields().PatientGender == gender {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (m *memStore[T, PT]) FindByDateRange(_ context.Context, start, end record.Date) ([]T, error) {
	var out []T
	for _, rec := range m.recs {
		if dateInRange(PT(rec).RecordFields().PrescriptionDate, start, end) {
			out = append(out, *rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return PT(&out[i]).RecordFields().PrescriptionDate.Time.
			Before(PT(&out[j]).RecordFields().PrescriptionDate.Time)
	})
	return out, nil
}

func (m *memStore[T, PT]) Delete(_ context.Context, id int) error {
	delete(m.recs, id)
	return nil
}

func (m *memStore[T, PT]) DeleteByDateRange(_ context.Context, start, end record.Date) error {
	for id, rec := range m.recs {
		if dateInRange(PT(rec).RecordFields().PrescriptionDate, start, end) {
			delete(m.recs, id)
		}
	}
	return nil
}

func (m *memStore[T, PT]) CountByDate(_ context.Context, start, end record.Date) ([]record.DayWiseCount, error) {
	grouped := make(map[string]*record.DayWiseCount)
	for _, rec := range m.recs {
		d := PT(rec).RecordFields().PrescriptionDate
		if !dateInRange(d, start, end) {
			continue
		}
		if g, ok := grouped[d.String()]; ok {
			g.Count++
		} else {
			grouped[d.String()] = &record.DayWiseCount{Date: d, Count: 1}
		}
	}
	var out []record.DayWiseCount
	for _, g := range grouped {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Time.Before(out[j].Date.Time) })
	return out, nil
}

func dateInRange(d, start, end record.Date) bool {
	return !d.Time.Before(start.Time) && !d.Time.After(end.Time)
}

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.users[u.Username] = u
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	cfg := &config.Config{
		App:  config.AppConfig{Name: "rxtrack-api", Environment: "test"},
		CORS: config.CORSConfig{AllowedOrigin: "http://localhost:5173"},
		JWT:  config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour, Issuer: "rxtrack-api-test"},
	}
	jwtManager := auth.NewJWTManager(cfg.JWT)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	users := &fakeUserRepo{users: map[string]*domain.User{
		"admin": {ID: 1, Username: "admin", PasswordHash: string(hash), Role: domain.RoleUser},
	}}

	prescriptionSvc := service.NewPrescriptionService(
		newMemStore[record.Prescription, *record.Prescription](), nil, log)
	historySvc := service.NewHistoryService(
		newMemStore[record.History, *record.History](), log)
	authSvc := service.NewAuthService(users, jwtManager, log)

	return NewRouter(RouterDeps{
		Prescription: NewPrescriptionHandler(prescriptionSvc),
		History:      NewHistoryHandler(historySvc),
		Auth:         NewAuthHandler(authSvc),
		JWTManager:   jwtManager,
		Log:          log,
		Config:       cfg,
	})
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"prescriptionDate":"2025-05-02","patientName":"Alice Rahman","patientAge":28,"patientGender":"Female","diagnosis":"Fever","medicines":"Paracetamol 500mg","nextVisitDate":"2025-05-09"}`

func TestGetPrescriptionNotFound(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/api/v1/prescription/5", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := rec.Body.String(); got != "Prescription with ID 5 not found" {
		t.Fatalf("body = %q", got)
	}
}

func TestCreateAndListPrescription(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/api/v1/prescription", validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body=%s", rec.Code, rec.Body.String())
	}

	var created record.Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created record has no id")
	}

	list := doJSON(r, http.MethodGet, "/api/v1/prescription", "")
	if list.Code != http.StatusOK {
		t.Fatalf("list status = %d", list.Code)
	}
	var recs []record.Prescription
	if err := json.Unmarshal(list.Body.Bytes(), &recs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("list holds %d records, want 1", len(recs))
	}
}

func TestCreatePrescriptionValidationFailure(t *testing.T) {
	r := newTestRouter(t)

	body := `{"prescriptionDate":"2025-05-02","patientName":"Alice","patientAge":131,"patientGender":"Female"}`
	rec := doJSON(r, http.MethodPost, "/api/v1/prescription", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp ValidationErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "validation failed" || len(resp.Fields) == 0 {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestPutPathIDWins(t *testing.T) {
	r := newTestRouter(t)

	body := strings.Replace(validBody, `"patientName":"Alice Rahman"`, `"id":99,"patientName":"Hasan Karim"`, 1)
	rec := doJSON(r, http.MethodPut, "/api/v1/prescription/7", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	var updated record.Prescription
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if updated.ID != 7 {
		t.Fatalf("id = %d, want path id 7 (body id must lose)", updated.ID)
	}

	got := doJSON(r, http.MethodGet, "/api/v1/prescription/7", "")
	if got.Code != http.StatusOK {
		t.Fatalf("get after put: status = %d", got.Code)
	}
}

func TestDayWiseReport(t *testing.T) {
	r := newTestRouter(t)

	for _, date := range []string{"2025-05-02", "2025-05-05", "2025-05-05"} {
		body := strings.Replace(validBody, "2025-05-02", date, 1)
		if rec := doJSON(r, http.MethodPost, "/api/v1/prescription", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed create failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := doJSON(r, http.MethodGet, "/api/v1/prescription/daywise-report?start=2025-05-01&end=2025-05-10", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var counts []record.DayWiseCount
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(counts) != 2 ||
		counts[0].Date.String() != "2025-05-02" || counts[0].Count != 1 ||
		counts[1].Date.String() != "2025-05-05" || counts[1].Count != 2 {
		t.Fatalf("unexpected report: %+v", counts)
	}
}

func TestByDateRequiresParams(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodGet, "/api/v1/prescription/by-date?start=2025-05-01", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(r, http.MethodGet, "/api/v1/prescription/by-date?start=bogus&end=2025-05-10", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for malformed date", rec.Code)
	}
}

func TestDeletePrescription(t *testing.T) {
	r := newTestRouter(t)

	created := doJSON(r, http.MethodPost, "/api/v1/prescription", validBody)
	var p record.Prescription
	if err := json.Unmarshal(created.Body.Bytes(), &p); err != nil {
		t.Fatalf("invalid json: %v", err)
	}

	rec := doJSON(r, http.MethodDelete, "/api/v1/prescription/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "deleted successfully") {
		t.Fatalf("body = %q", rec.Body.String())
	}

	// Deleting again is a silent no-op.
	rec = doJSON(r, http.MethodDelete, "/api/v1/prescription/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat delete status = %d, want 200", rec.Code)
	}
}

func TestDeleteByDateRange(t *testing.T) {
	r := newTestRouter(t)

	doJSON(r, http.MethodPost, "/api/v1/prescription", validBody)

	rec := doJSON(r, http.MethodDelete, "/api/v1/prescription/by-date?start=2025-05-01&end=2025-05-31", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}

	list := doJSON(r, http.MethodGet, "/api/v1/prescription", "")
	if body := strings.TrimSpace(list.Body.String()); body != "[]" {
		t.Fatalf("list after bulk delete = %s, want []", body)
	}
}

func TestHistoryKeepsCallerID(t *testing.T) {
	r := newTestRouter(t)

	body := strings.Replace(validBody, `"patientName"`, `"id":220,"patientName"`, 1)
	rec := doJSON(r, http.MethodPost, "/api/v1/history", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}

	var h record.History
	if err := json.Unmarshal(rec.Body.Bytes(), &h); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if h.ID != 220 {
		t.Fatalf("id = %d, want caller-supplied 220", h.ID)
	}

	got := doJSON(r, http.MethodGet, "/api/v1/history/220", "")
	if got.Code != http.StatusOK {
		t.Fatalf("get status = %d", got.Code)
	}
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"admin123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Username != "admin" || resp.Token == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	r := newTestRouter(t)

	for _, body := range []string{
		`{"username":"admin","password":"wrong"}`,
		`{"username":"nobody","password":"admin123"}`,
	} {
		rec := doJSON(r, http.MethodPost, "/api/v1/auth/login", body)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if resp.Error != "Invalid username or password" {
			t.Fatalf("error = %q, must not reveal which factor failed", resp.Error)
		}
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prescription", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
}
