package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestCreateTestRequestAgainstConsultation(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	labTest := e.createTestType(t, "Urinalysis", 200, models.CategoryLab)

	w := e.do(t, http.MethodPost, "/api/v1/test_requests", map[string]interface{}{
		"testTypeId":     labTest.ID,
		"consultationId": consultation.ID,
	}, cookie)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.InDelta(t, 200.0, data["amount"], 0.001, "charge comes from the price list")
	assert.Equal(t, string(models.TestStatusPending), data["status"])
}

func TestCreateTestRequestEnforcesSingleParent(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	labTest := e.createTestType(t, "Urinalysis", 200, models.CategoryLab)

	// Neither parent.
	w := e.do(t, http.MethodPost, "/api/v1/test_requests", map[string]interface{}{
		"testTypeId": labTest.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Both parents.
	w = e.do(t, http.MethodPost, "/api/v1/test_requests", map[string]interface{}{
		"testTypeId":     labTest.ID,
		"consultationId": consultation.ID,
		"visitId":        visit.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTestRequestMatchesTechnicianToCategory(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	labTech := e.createUser(t, models.RoleLabTech)
	imagingTech := e.createUser(t, models.RoleImagingTech)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	imagingTest := e.createTestType(t, "Chest X-Ray", 800, models.CategoryImaging)

	// A lab tech cannot run an imaging test.
	w := e.do(t, http.MethodPost, "/api/v1/test_requests", map[string]interface{}{
		"testTypeId":     imagingTest.ID,
		"consultationId": consultation.ID,
		"technicianId":   labTech.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/test_requests", map[string]interface{}{
		"testTypeId":     imagingTest.ID,
		"consultationId": consultation.ID,
		"technicianId":   imagingTech.ID,
	}, cookie)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestUpdateTestRequestRecordsResults(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	labTech := e.createUser(t, models.RoleLabTech)
	cookie := e.sessionFor(t, labTech)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	labTest := e.createTestType(t, "Blood Sugar", 150, models.CategoryLab)

	request := models.TestRequest{
		ConsultationID: &consultation.ID,
		TestTypeID:     labTest.ID,
	}
	require.NoError(t, e.db.Create(&request).Error)

	w := e.do(t, http.MethodPatch, "/api/v1/test_requests/"+request.ID, map[string]interface{}{
		"technicianId": labTech.ID,
		"results":      "5.4 mmol/L",
		"status":       "completed",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.TestRequest
	require.NoError(t, e.db.First(&stored, "id = ?", request.ID).Error)
	assert.Equal(t, models.TestStatusCompleted, stored.Status)
	assert.Equal(t, "5.4 mmol/L", stored.Results)
	require.NotNil(t, stored.TechnicianID)
	assert.Equal(t, labTech.ID, *stored.TechnicianID)
}

func TestDeleteTestRequest(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)
	labTest := e.createTestType(t, "Urinalysis", 200, models.CategoryLab)

	request := models.TestRequest{
		VisitID:    &visit.ID,
		TestTypeID: labTest.ID,
	}
	require.NoError(t, e.db.Create(&request).Error)

	w := e.do(t, http.MethodDelete, "/api/v1/test_requests/"+request.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	e.db.Model(&models.TestRequest{}).Where("id = ?", request.ID).Count(&count)
	assert.Zero(t, count)
}
