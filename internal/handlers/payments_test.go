package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic-management-server/internal/models"
)

func TestCreatePaymentAgainstVisit(t *testing.T) {
	e := newEnv(t)
	receptionist := e.createUser(t, models.RoleReceptionist)
	cookie := e.sessionFor(t, receptionist)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)

	w := e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"visitId":        visit.ID,
		"amount":         500,
		"serviceType":    "consultation",
		"paymentMethod":  "mpesa",
		"mpesaReceipt":   "QGH7KL2M3N",
		"receptionistId": receptionist.ID,
	}, cookie)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, visit.ID, data["visitId"])
	assert.Equal(t, "QGH7KL2M3N", data["mpesaReceipt"])
}

func TestCreatePaymentEnforcesSingleTarget(t *testing.T) {
	e := newEnv(t)
	receptionist := e.createUser(t, models.RoleReceptionist)
	cookie := e.sessionFor(t, receptionist)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)

	sale := models.OTCSale{PatientName: "Walk-in", Stage: models.OTCStageWaitingPharmacy}
	require.NoError(t, e.db.Create(&sale).Error)

	// Neither target.
	w := e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"amount":         500,
		"serviceType":    "pharmacy",
		"paymentMethod":  "cash",
		"receptionistId": receptionist.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Both targets.
	w = e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"visitId":        visit.ID,
		"otcSaleId":      sale.ID,
		"amount":         500,
		"serviceType":    "pharmacy",
		"paymentMethod":  "cash",
		"receptionistId": receptionist.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentValidatesReceptionistAndMethod(t *testing.T) {
	e := newEnv(t)
	receptionist := e.createUser(t, models.RoleReceptionist)
	doctor := e.createUser(t, models.RoleDoctor)
	cookie := e.sessionFor(t, receptionist)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)

	// Recorded-by must hold the receptionist role.
	w := e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"visitId":        visit.ID,
		"amount":         500,
		"serviceType":    "consultation",
		"paymentMethod":  "cash",
		"receptionistId": doctor.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown payment method.
	w = e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"visitId":        visit.ID,
		"amount":         500,
		"serviceType":    "consultation",
		"paymentMethod":  "card",
		"receptionistId": receptionist.ID,
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Target must exist.
	w = e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"visitId":        "missing-visit",
		"amount":         500,
		"serviceType":    "consultation",
		"paymentMethod":  "cash",
		"receptionistId": receptionist.ID,
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePaymentKeepsTarget(t *testing.T) {
	e := newEnv(t)
	receptionist := e.createUser(t, models.RoleReceptionist)
	cookie := e.sessionFor(t, receptionist)
	patient := e.createPatient(t)
	visit := e.createVisit(t, patient.ID)

	visitID := visit.ID
	payment := models.Payment{
		VisitID:        &visitID,
		Amount:         500,
		ServiceType:    "consultation",
		PaymentMethod:  models.PaymentCash,
		ReceptionistID: receptionist.ID,
	}
	require.NoError(t, e.db.Create(&payment).Error)

	w := e.do(t, http.MethodPatch, "/api/v1/payments/"+payment.ID, map[string]interface{}{
		"amount": 650,
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Payment
	require.NoError(t, e.db.First(&stored, "id = ?", payment.ID).Error)
	assert.InDelta(t, 650.0, stored.Amount, 0.001)
	require.NotNil(t, stored.VisitID)
	assert.Equal(t, visit.ID, *stored.VisitID)
}

func TestCreatePaymentRequiresReceptionistSession(t *testing.T) {
	e := newEnv(t)
	pharmacist := e.createUser(t, models.RolePharmacist)
	cookie := e.sessionFor(t, pharmacist)

	w := e.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"amount":         500,
		"serviceType":    "pharmacy",
		"paymentMethod":  "cash",
		"receptionistId": pharmacist.ID,
	}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
