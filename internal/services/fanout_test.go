package services

import (
	"context"
	"testing"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFanout(h hierarchy, p *fakePusher) *FanoutService {
	return NewFanoutService(h.st, p, 1000, 1000, zerolog.Nop())
}

func TestFanOut_SupervisorVillageSkipsRecipientsWithoutToken(t *testing.T) {
	h := seedHierarchy()
	pusher := &fakePusher{}

	res, err := newFanout(h, pusher).FanOut(context.Background(), h.supervisor, models.ScopeSupervisorVillage, "Camp", "Polio camp on Monday", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Recipients)
	assert.Equal(t, 1, res.Delivered)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Pushed)
	assert.Zero(t, res.PushFailed)
	assert.Equal(t, []string{"T1"}, pusher.sent)

	require.Len(t, h.st.Notifications, 1)
	for _, n := range h.st.Notifications {
		assert.Equal(t, h.a1.UserID, n.ReceiverID)
		assert.Equal(t, h.supervisor.UserID, n.SenderID)
		assert.Equal(t, res.NoticeID, n.NoticeID)
	}
	assert.Len(t, h.st.Notices, 1)
}

func TestFanOut_RowCountEqualsRecipientsWithToken(t *testing.T) {
	h := seedHierarchy()
	h.st.Tokens[h.a2.UserID] = "T2"

	res, err := newFanout(h, &fakePusher{}).FanOut(context.Background(), h.supervisor, models.ScopeSupervisorTeam, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Delivered)
	assert.Len(t, h.st.Notifications, 2)
}

func TestFanOut_FailuresStayPerRecipient(t *testing.T) {
	h := seedHierarchy()
	h.st.Tokens[h.a2.UserID] = "T2"
	h.st.NotificationErrors[h.a1.UserID] = errBoom
	pusher := &fakePusher{failFor: map[string]error{"T2": errBoom}}

	res, err := newFanout(h, pusher).FanOut(context.Background(), h.supervisor, models.ScopeSupervisorTeam, "t", "b", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.InsertFailed)
	assert.Equal(t, 1, res.Delivered)
	assert.Equal(t, 1, res.PushFailed)
	// A1's row failed so nothing was pushed to T1; A2's row survives its failed push
	assert.Equal(t, []string{"T2"}, pusher.sent)
	require.Len(t, h.st.Notifications, 1)
}

func TestFanOut_DisabledPusherStillWritesRows(t *testing.T) {
	h := seedHierarchy()
	pusher := &fakePusher{disabled: true}

	res, err := newFanout(h, pusher).FanOut(context.Background(), h.supervisor, models.ScopeSupervisorVillage, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered)
	assert.Zero(t, res.Pushed)
	assert.Empty(t, pusher.sent)
}

func TestFanOut_ScopeNotAllowedForRole(t *testing.T) {
	h := seedHierarchy()
	asha := Actor{UserID: h.a1.UserID, Role: models.RoleAsha, AshaID: h.a1.AshaID}

	_, err := newFanout(h, &fakePusher{}).FanOut(context.Background(), asha, models.ScopeSupervisorVillage, "t", "b", nil)
	assert.True(t, utils.IsKind(err, utils.KindAuthorization))
	assert.Empty(t, h.st.Notices)
}

func TestFanOut_AshaToPatients(t *testing.T) {
	h := seedHierarchy()
	pu := h.st.AddUser(models.User{Phone: "9100000000", Role: models.RolePatient})
	h.st.AddPatient(models.Patient{UserID: pu.UserID, RegisteredAshaID: uptr(h.a1.AshaID)})
	h.st.Tokens[pu.UserID] = "TP"
	asha := Actor{UserID: h.a1.UserID, Role: models.RoleAsha, AshaID: h.a1.AshaID}
	pusher := &fakePusher{}

	res, err := newFanout(h, pusher).FanOut(context.Background(), asha, models.ScopeAshaPatients, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered)
	assert.Equal(t, []string{"TP"}, pusher.sent)
}

func TestFanOut_LHVToSupervisors(t *testing.T) {
	h := seedHierarchy()
	h.st.Tokens[h.supervisor.UserID] = "TS"
	lu := h.st.AddUser(models.User{Phone: "9200000000", Role: models.RoleLHV})
	h.st.LHVs[lu.UserID] = models.LHVDetails{UserID: lu.UserID, Village: "V1"}
	lhv := Actor{UserID: lu.UserID, Role: models.RoleLHV}

	res, err := newFanout(h, &fakePusher{}).FanOut(context.Background(), lhv, models.ScopeLHVSupervisors, "t", "b", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Recipients)
	assert.Equal(t, 1, res.Delivered)
}

func TestFanOut_Direct(t *testing.T) {
	h := seedHierarchy()
	svc := newFanout(h, &fakePusher{})
	govt := Actor{UserID: 500, Role: models.RoleGovt}

	_, err := svc.FanOut(context.Background(), govt, models.ScopeDirect, "t", "b", nil)
	assert.True(t, utils.IsKind(err, utils.KindValidation))

	_, err = svc.FanOut(context.Background(), govt, models.ScopeDirect, "t", "b", uptr(9999))
	assert.True(t, utils.IsKind(err, utils.KindNotFound))

	res, err := svc.FanOut(context.Background(), govt, models.ScopeDirect, "t", "b", uptr(h.a1.UserID))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Delivered)
}

func TestFanOut_RequiresTitleAndBody(t *testing.T) {
	h := seedHierarchy()
	_, err := newFanout(h, &fakePusher{}).FanOut(context.Background(), h.supervisor, models.ScopeSupervisorVillage, " ", "b", nil)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
}

func TestScopeAllowed(t *testing.T) {
	assert.True(t, ScopeAllowed(models.RoleSupervisor, models.ScopeSupervisorTeam))
	assert.True(t, ScopeAllowed(models.RoleLHV, models.ScopeLHVSupervisors))
	assert.False(t, ScopeAllowed(models.RoleLHV, models.ScopeAshaPatients))
	assert.False(t, ScopeAllowed(models.RolePatient, models.ScopeDirect))
	assert.True(t, ScopeAllowed(models.RoleGovt, models.ScopeDirect))

	_, ok := DefaultScope(models.RoleGovt)
	assert.False(t, ok)
	s, ok := DefaultScope(models.RoleAsha)
	assert.True(t, ok)
	assert.Equal(t, models.ScopeAshaPatients, s)
}
