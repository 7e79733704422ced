package services

import (
	"context"
	"testing"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store/storetest"
	"asha-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientConsultation_OwnershipChecked(t *testing.T) {
	st := storetest.NewMemory()
	d := st.AddDoctor(models.Doctor{DocName: "Dr. Rao", Phone: "8000000000"})
	st.Queue[50] = models.QueueEntry{QueueID: 50, PatientID: 1, DocID: d.DocID, Status: models.QueueStatusInConsultation}
	c := models.Consultation{PatientID: 1, DoctorID: d.DocID, Diagnosis: "Flu", ConsultationDate: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, st.CompleteConsultation(context.Background(), &c))
	svc := NewRecordService(st, st)

	view, err := svc.PatientConsultation(context.Background(), Actor{PatientID: 1}, c.ConsultationID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rao", view.DoctorName)
	assert.Equal(t, "8000000000", view.DoctorPhone)
	assert.NotNil(t, view.Items)

	_, err = svc.PatientConsultation(context.Background(), Actor{PatientID: 2}, c.ConsultationID)
	assert.True(t, utils.IsKind(err, utils.KindAuthorization))

	_, err = svc.PatientConsultation(context.Background(), Actor{PatientID: 1}, 9999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	summaries, err := svc.ConsultationSummaries(context.Background(), Actor{PatientID: 1})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "03 Feb 2024", summaries[0].ConsultationDateReadable)
}

func TestRaiseQuery(t *testing.T) {
	st := storetest.NewMemory()
	p := st.AddPatient(models.Patient{})
	d := st.AddDoctor(models.Doctor{DocName: "Dr"})
	svc := NewRecordService(st, st)
	ctx := context.Background()

	q, err := svc.RaiseQuery(ctx, Actor{Role: models.RolePatient, PatientID: p.PatientID}, models.PatientQueryInput{Text: "pain", Disease: "back", DocID: uptr(d.DocID)})
	require.NoError(t, err)
	assert.Equal(t, p.PatientID, q.PatientID)
	assert.Equal(t, "PENDING", q.Status)

	_, err = svc.RaiseQuery(ctx, Actor{Role: models.RoleAsha, AshaID: 3}, models.PatientQueryInput{Text: "x", Disease: "y"})
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	q, err = svc.RaiseQuery(ctx, Actor{Role: models.RoleAsha, AshaID: 3}, models.PatientQueryInput{PatientID: p.PatientID, Text: "x", Disease: "y"})
	require.NoError(t, err)
	require.NotNil(t, q.AshaID)
	assert.Nil(t, q.DocID)

	queries, err := svc.DoctorQueries(ctx, Actor{DoctorID: d.DocID})
	require.NoError(t, err)
	assert.Len(t, queries, 2)
}

func TestPatientHistory(t *testing.T) {
	st := storetest.NewMemory()
	p := st.AddPatient(models.Patient{})
	svc := NewRecordService(st, st)

	_, err := svc.PatientHistory(context.Background(), p.PatientID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	require.NoError(t, st.AppendVisit(context.Background(), p.PatientID, models.Visit{Diagnosis: "Cold"}))
	h, err := svc.PatientHistory(context.Background(), p.PatientID)
	require.NoError(t, err)
	assert.Len(t, h.History, 1)

	_, err = svc.PatientHistory(context.Background(), 999)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}

func TestNotifications(t *testing.T) {
	h := seedHierarchy()
	_, err := newFanout(h, &fakePusher{}).FanOut(context.Background(), h.supervisor, models.ScopeSupervisorVillage, "t", "b", nil)
	require.NoError(t, err)
	svc := NewNotificationService(h.st)
	a1 := Actor{UserID: h.a1.UserID}

	unread, err := svc.Unread(context.Background(), a1)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	err = svc.MarkRead(context.Background(), Actor{UserID: h.a2.UserID}, unread[0].ID)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	require.NoError(t, svc.MarkRead(context.Background(), a1, unread[0].ID))
	unread, err = svc.Unread(context.Background(), a1)
	require.NoError(t, err)
	assert.Empty(t, unread)

	assert.True(t, utils.IsKind(svc.SaveToken(context.Background(), a1, "  "), utils.KindValidation))
	require.NoError(t, svc.SaveToken(context.Background(), a1, "T1-new"))
	assert.Equal(t, "T1-new", h.st.Tokens[h.a1.UserID])
}

func TestInventory(t *testing.T) {
	st := storetest.NewMemory()
	svc := NewInventoryService(st)
	chemist := Actor{Role: models.RoleChemist, ChemistID: 4}
	ctx := context.Background()

	inv, err := svc.Get(ctx, chemist)
	require.NoError(t, err)
	assert.NotNil(t, inv.Inventory)
	assert.Empty(t, inv.Inventory)

	inv, err = svc.Replace(ctx, chemist, []models.Medicine{{MedicineName: "ORS", BatchNo: "B1", Quantity: 10}})
	require.NoError(t, err)
	assert.Len(t, inv.Inventory, 1)

	inv, err = svc.AddMedicine(ctx, chemist, models.Medicine{MedicineName: "Zinc", BatchNo: "B2", Quantity: 5})
	require.NoError(t, err)
	assert.Len(t, inv.Inventory, 2)

	got, err := svc.Get(ctx, chemist)
	require.NoError(t, err)
	assert.Equal(t, inv.Inventory, got.Inventory)
}
