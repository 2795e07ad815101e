package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestCreateConsultationLinksVisitAndDefaultsFee(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)

	w := e.do(t, http.MethodPost, "/api/v1/consultations", map[string]interface{}{
		"patientId":      patient.ID,
		"doctorId":       doctor.ID,
		"visitId":        visit.ID,
		"chiefComplaint": "Headache for three days",
		"diagnosis":      "Migraine",
	}, cookie)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.InDelta(t, e.cfg.ConsultationFee, data["fee"], 0.001, "fee comes from configuration")

	var stored models.Visit
	require.NoError(t, e.db.First(&stored, "id = ?", visit.ID).Error)
	require.NotNil(t, stored.ConsultationID)
	assert.Equal(t, data["id"], *stored.ConsultationID)
}

func TestCreateConsultationRejectsNonDoctor(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	nurse := e.createUser(t, models.RoleNurse)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)

	w := e.do(t, http.MethodPost, "/api/v1/consultations", map[string]interface{}{
		"patientId": patient.ID,
		"doctorId":  nurse.ID,
		"visitId":   visit.ID,
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "doctor")
}

func TestUpdateConsultationOverridesFee(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)

	w := e.do(t, http.MethodPatch, "/api/v1/consultations/"+consultation.ID, map[string]interface{}{
		"fee":       350,
		"diagnosis": "Tension headache",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Consultation
	require.NoError(t, e.db.First(&stored, "id = ?", consultation.ID).Error)
	assert.InDelta(t, 350.0, stored.Fee, 0.001)
	assert.Equal(t, "Tension headache", stored.Diagnosis)
}

func TestDeleteConsultationUnlinksVisitAndCascades(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	require.NoError(t, e.db.Model(&visit).Update("consultation_id", consultation.ID).Error)

	labTest := e.createTestType(t, "Urinalysis", 200, models.CategoryLab)
	request := models.TestRequest{ConsultationID: &consultation.ID, TestTypeID: labTest.ID}
	require.NoError(t, e.db.Create(&request).Error)

	w := e.do(t, http.MethodDelete, "/api/v1/consultations/"+consultation.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Visit
	require.NoError(t, e.db.First(&stored, "id = ?", visit.ID).Error)
	assert.Nil(t, stored.ConsultationID)

	var count int64
	e.db.Model(&models.TestRequest{}).Where("id = ?", request.ID).Count(&count)
	assert.Zero(t, count, "test requests go with the consultation")
}
