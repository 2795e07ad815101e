package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestCreateUserHashesPasswordAndNormalizesPhone(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, models.RoleAdmin)
	cookie := e.sessionFor(t, admin)

	w := e.do(t, http.MethodPost, "/api/v1/users", map[string]interface{}{
		"firstName":   "Achieng",
		"lastName":    "Otieno",
		"email":       "achieng@clinic.test",
		"password":    "s3cret-pass",
		"role":        "nurse",
		"phoneNumber": "0712345678",
	}, cookie)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "+254712345678", data["phoneNumber"])
	assert.NotContains(t, data, "password")

	var stored models.User
	require.NoError(t, e.db.First(&stored, "email = ?", "achieng@clinic.test").Error)
	assert.NotEqual(t, "s3cret-pass", stored.Password, "password must be hashed")
	assert.True(t, stored.CheckPassword("s3cret-pass"))
}

func TestCreateUserRejectsDuplicateEmailAndBadRole(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, models.RoleAdmin)
	cookie := e.sessionFor(t, admin)

	body := map[string]interface{}{
		"firstName": "Achieng",
		"lastName":  "Otieno",
		"email":     "achieng@clinic.test",
		"password":  "s3cret-pass",
		"role":      "nurse",
	}
	w := e.do(t, http.MethodPost, "/api/v1/users", body, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/users", body, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body["email"] = "other@clinic.test"
	body["role"] = "surgeon"
	w = e.do(t, http.MethodPost, "/api/v1/users", body, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUsersOmitsPasswords(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, models.RoleAdmin)
	e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, admin)

	w := e.do(t, http.MethodGet, "/api/v1/users", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestDeleteUser(t *testing.T) {
	e := newEnv(t)
	admin := e.createUser(t, models.RoleAdmin)
	nurse := e.createUser(t, models.RoleNurse)
	cookie := e.sessionFor(t, admin)

	w := e.do(t, http.MethodDelete, "/api/v1/users/"+nurse.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	e.db.Model(&models.User{}).Where("id = ?", nurse.ID).Count(&count)
	assert.Zero(t, count)
}
