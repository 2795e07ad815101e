package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-management-server/internal/config"
	"clinic-management-server/internal/models"
	"clinic-management-server/internal/routes"
	"clinic-management-server/internal/utils"
)

// env bundles a router backed by an in-memory database for handler tests.
type env struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.RegisterCustomValidators()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A second pooled connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db))

	cfg := &config.Config{
		Environment:     "development",
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		ConsultationFee: 200,
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)

	return &env{router: router, db: db, cfg: cfg}
}

func (e *env) createUser(t *testing.T, role models.Role) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  string(role),
		Email:     string(role) + "-" + uuid.NewString() + "@clinic.test",
		Role:      role,
	}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func (e *env) createPatient(t *testing.T) models.Patient {
	t.Helper()
	patient := models.Patient{
		FirstName:   "Wanjiku",
		LastName:    "Kamau",
		Gender:      models.GenderFemale,
		DateOfBirth: time.Date(1990, 5, 14, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, e.db.Create(&patient).Error)
	return patient
}

func (e *env) createVisit(t *testing.T, patientID string) models.Visit {
	t.Helper()
	visit := models.Visit{PatientID: patientID, Stage: models.StageReception}
	require.NoError(t, e.db.Create(&visit).Error)
	return visit
}

func (e *env) createMedicine(t *testing.T, name string, stock int, sellingPrice float64) models.Medicine {
	t.Helper()
	medicine := models.Medicine{
		Name:         name,
		Stock:        stock,
		BuyingPrice:  sellingPrice / 2,
		SellingPrice: sellingPrice,
		Unit:         "tablet",
	}
	require.NoError(t, e.db.Create(&medicine).Error)
	return medicine
}

func (e *env) createTestType(t *testing.T, name string, price float64, category models.TestCategory) models.TestType {
	t.Helper()
	tt := models.TestType{Name: name, Price: price, Category: category}
	require.NoError(t, e.db.Create(&tt).Error)
	return tt
}

func (e *env) createConsultation(t *testing.T, patientID, doctorID string, fee float64) models.Consultation {
	t.Helper()
	consultation := models.Consultation{PatientID: patientID, DoctorID: doctorID, Fee: fee}
	require.NoError(t, e.db.Create(&consultation).Error)
	return consultation
}

// sessionFor mints a session cookie the way a successful login would.
func (e *env) sessionFor(t *testing.T, user models.User) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateSessionToken(&user, e.cfg)
	require.NoError(t, err)
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func (e *env) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unwraps the data field of the standard response envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
		Error   string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil
	}
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

// decodeError pulls the error string out of the response envelope.
func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}
