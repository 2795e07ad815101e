package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestCreatePrescriptionMovesStock(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	medicine := e.createMedicine(t, "Amoxicillin 500mg", 50, 20)

	w := e.do(t, http.MethodPost, "/api/v1/prescriptions", map[string]interface{}{
		"consultationId": consultation.ID,
		"medicineId":     medicine.ID,
		"dosage":         "1x3 for 5 days",
		"dispensedUnits": 15,
	}, cookie)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.InDelta(t, 300.0, data["price"], 0.001, "15 units at 20 each")

	var stored models.Medicine
	require.NoError(t, e.db.First(&stored, "id = ?", medicine.ID).Error)
	assert.Equal(t, 35, stored.Stock)
	assert.Equal(t, 15, stored.SoldUnits)
}

func TestCreatePrescriptionRejectsInsufficientStock(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	medicine := e.createMedicine(t, "Amoxicillin 500mg", 5, 20)

	w := e.do(t, http.MethodPost, "/api/v1/prescriptions", map[string]interface{}{
		"consultationId": consultation.ID,
		"medicineId":     medicine.ID,
		"dosage":         "1x3",
		"dispensedUnits": 10,
	}, cookie)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "only 5 units available")

	var stored models.Medicine
	require.NoError(t, e.db.First(&stored, "id = ?", medicine.ID).Error)
	assert.Equal(t, 5, stored.Stock, "stock is untouched on rejection")
}

func TestUpdatePrescriptionAppliesStockDelta(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	pharmacist := e.createUser(t, models.RolePharmacist)
	cookie := e.sessionFor(t, pharmacist)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	medicine := e.createMedicine(t, "Amoxicillin 500mg", 50, 20)

	prescription := models.Prescription{
		ConsultationID: consultation.ID,
		MedicineID:     medicine.ID,
		Dosage:         "1x3",
		DispensedUnits: 0,
	}
	require.NoError(t, e.db.Create(&prescription).Error)

	// Dispense 10 units.
	w := e.do(t, http.MethodPatch, "/api/v1/prescriptions/"+prescription.ID, map[string]interface{}{
		"pharmacistId":   pharmacist.ID,
		"status":         "dispensed",
		"dispensedUnits": 10,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Medicine
	require.NoError(t, e.db.First(&stored, "id = ?", medicine.ID).Error)
	assert.Equal(t, 40, stored.Stock)
	assert.Equal(t, 10, stored.SoldUnits)

	// Correct down to 4 units; the difference goes back into stock.
	w = e.do(t, http.MethodPatch, "/api/v1/prescriptions/"+prescription.ID, map[string]interface{}{
		"dispensedUnits": 4,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, e.db.First(&stored, "id = ?", medicine.ID).Error)
	assert.Equal(t, 46, stored.Stock)
	assert.Equal(t, 4, stored.SoldUnits)
}

func TestUpdatePrescriptionRejectsNonPharmacistDispenser(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, doctor)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	medicine := e.createMedicine(t, "Amoxicillin 500mg", 50, 20)

	prescription := models.Prescription{
		ConsultationID: consultation.ID,
		MedicineID:     medicine.ID,
		Dosage:         "1x3",
	}
	require.NoError(t, e.db.Create(&prescription).Error)

	w := e.do(t, http.MethodPatch, "/api/v1/prescriptions/"+prescription.ID, map[string]interface{}{
		"pharmacistId": doctor.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "pharmacist")
}

func TestDeletePrescriptionRestoresStock(t *testing.T) {
	e := newEnv(t)
	doctor := e.createUser(t, models.RoleDoctor)
	pharmacist := e.createUser(t, models.RolePharmacist)
	cookie := e.sessionFor(t, pharmacist)
	patient := e.createPatient(t)
	consultation := e.createConsultation(t, patient.ID, doctor.ID, 200)
	medicine := e.createMedicine(t, "Amoxicillin 500mg", 40, 20)

	prescription := models.Prescription{
		ConsultationID: consultation.ID,
		MedicineID:     medicine.ID,
		Dosage:         "1x3",
		DispensedUnits: 10,
	}
	require.NoError(t, e.db.Create(&prescription).Error)
	require.NoError(t, e.db.Model(&models.Medicine{}).Where("id = ?", medicine.ID).
		Updates(map[string]interface{}{"stock": 30, "sold_units": 10}).Error)

	w := e.do(t, http.MethodDelete, "/api/v1/prescriptions/"+prescription.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Medicine
	require.NoError(t, e.db.First(&stored, "id = ?", medicine.ID).Error)
	assert.Equal(t, 40, stored.Stock)
	assert.Equal(t, 0, stored.SoldUnits)
}
