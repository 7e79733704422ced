package services

import (
	"context"
	"testing"

	"asha-backend/internal/models"
	"asha-backend/internal/store/storetest"
	"asha-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(family []models.PatientSummary) []uint64 {
	out := make([]uint64, 0, len(family))
	for _, m := range family {
		out = append(out, m.PatientID)
	}
	return out
}

func TestResolveFamily_HeadAndMemberSeeSameCohort(t *testing.T) {
	st := storetest.NewMemory()
	p1 := st.AddPatient(models.Patient{PatientID: 10, SupremeID: 10, PatientName: "head"})
	p2 := st.AddPatient(models.Patient{PatientID: 11, SupremeID: 10, PatientName: "child"})
	st.AddPatient(models.Patient{PatientID: 20, SupremeID: 20, PatientName: "neighbour"})
	svc := NewFamilyService(st)

	fromHead, err := svc.ResolveFamily(context.Background(), p1.PatientID)
	require.NoError(t, err)
	fromMember, err := svc.ResolveFamily(context.Background(), p2.PatientID)
	require.NoError(t, err)

	assert.Equal(t, []uint64{10, 11}, ids(fromHead))
	assert.Equal(t, fromHead, fromMember)
}

func TestResolveFamily_ClosedUnderCohortHead(t *testing.T) {
	st := storetest.NewMemory()
	st.AddPatient(models.Patient{PatientID: 1, SupremeID: 1})
	st.AddPatient(models.Patient{PatientID: 2, SupremeID: 1})
	st.AddPatient(models.Patient{PatientID: 3, SupremeID: 1})
	st.AddPatient(models.Patient{PatientID: 4, SupremeID: 4})
	st.AddPatient(models.Patient{PatientID: 5, SupremeID: 4})
	svc := NewFamilyService(st)

	for id, p := range st.Patients {
		family, err := svc.ResolveFamily(context.Background(), id)
		require.NoError(t, err)
		for _, memberID := range ids(family) {
			assert.Equal(t, p.CohortHead(), st.Patients[memberID].CohortHead(), "patient %d", id)
		}
	}
}

func TestResolveFamily_LegacyHeadWithoutSupremeID(t *testing.T) {
	st := storetest.NewMemory()
	st.AddPatient(models.Patient{PatientID: 7})

	family, err := NewFamilyService(st).ResolveFamily(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []uint64{7}, ids(family))
}

func TestResolveFamily_UnknownPatient(t *testing.T) {
	_, err := NewFamilyService(storetest.NewMemory()).ResolveFamily(context.Background(), 1)
	assert.True(t, utils.IsKind(err, utils.KindNotFound))
}
