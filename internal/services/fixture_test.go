package services

import (
	"context"
	"errors"
	"sync"

	"asha-backend/internal/models"
	"asha-backend/internal/store/storetest"
)

type fakePusher struct {
	mu       sync.Mutex
	disabled bool
	failFor  map[string]error
	sent     []string
}

func (p *fakePusher) Enabled() bool { return !p.disabled }

func (p *fakePusher) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, token)
	if err := p.failFor[token]; err != nil {
		return err
	}
	return nil
}

var errBoom = errors.New("boom")

func uptr(v uint64) *uint64 { return &v }

// hierarchy seeds supervisor S in village V1 with ASHA workers A1 (token T1)
// and A2 (no token).
type hierarchy struct {
	st         *storetest.Memory
	supervisor Actor
	a1, a2     models.AshaWorker
}

func seedHierarchy() hierarchy {
	st := storetest.NewMemory()
	su := st.AddUser(models.User{UserName: "S", Phone: "9000000001", Role: models.RoleSupervisor})
	sw := st.AddAsha(models.AshaWorker{UserID: su.UserID, AshaName: "S", Village: "V1"})
	st.Supervisors[su.UserID] = models.SupervisorDetails{UserID: su.UserID, Village: "V1"}

	u1 := st.AddUser(models.User{UserName: "A1", Phone: "9000000002", Role: models.RoleAsha})
	a1 := st.AddAsha(models.AshaWorker{UserID: u1.UserID, AshaName: "A1", Village: "V1", SupervisorID: uptr(sw.AshaID)})
	u2 := st.AddUser(models.User{UserName: "A2", Phone: "9000000003", Role: models.RoleAsha})
	a2 := st.AddAsha(models.AshaWorker{UserID: u2.UserID, AshaName: "A2", Village: "V1", SupervisorID: uptr(sw.AshaID)})
	st.Tokens[u1.UserID] = "T1"

	return hierarchy{
		st:         st,
		supervisor: Actor{UserID: su.UserID, Role: models.RoleSupervisor, AshaID: sw.AshaID, Village: "V1"},
		a1:         a1,
		a2:         a2,
	}
}
