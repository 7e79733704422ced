package services

import (
	"context"
	"strconv"
	"strings"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
	"asha-backend/pkg/utils"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Pusher delivers one push message to one device token.
type Pusher interface {
	Enabled() bool
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// FanoutResult counts what happened to each resolved recipient.
type FanoutResult struct {
	NoticeID     uint64 `json:"notice_id"`
	Scope        string `json:"scope"`
	Recipients   int    `json:"recipients"`
	Delivered    int    `json:"delivered"`
	Skipped      int    `json:"skipped"`
	InsertFailed int    `json:"insert_failed"`
	Pushed       int    `json:"pushed"`
	PushFailed   int    `json:"push_failed"`
}

var allowedScopes = map[models.Role][]models.Scope{
	models.RoleSupervisor: {models.ScopeSupervisorVillage, models.ScopeSupervisorTeam, models.ScopeDirect},
	models.RoleLHV:        {models.ScopeLHVSupervisors, models.ScopeDirect},
	models.RoleAsha:       {models.ScopeAshaPatients, models.ScopeDirect},
	models.RoleGovt:       {models.ScopeDirect},
}

// defaultScopes is used by create-notice when no receiver is given.
var defaultScopes = map[models.Role]models.Scope{
	models.RoleSupervisor: models.ScopeSupervisorVillage,
	models.RoleLHV:        models.ScopeLHVSupervisors,
	models.RoleAsha:       models.ScopeAshaPatients,
}

// ScopeAllowed reports whether role may send a notice under scope.
func ScopeAllowed(role models.Role, scope models.Scope) bool {
	for _, s := range allowedScopes[role] {
		if s == scope {
			return true
		}
	}
	return false
}

// DefaultScope is the broadcast scope of role, if it has one.
func DefaultScope(role models.Role) (models.Scope, bool) {
	s, ok := defaultScopes[role]
	return s, ok
}

type FanoutService struct {
	store   store.Store
	pusher  Pusher
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewFanoutService paces pushes at rps with the given burst.
func NewFanoutService(st store.Store, pusher Pusher, rps float64, burst int, logger zerolog.Logger) *FanoutService {
	if burst < 1 {
		burst = 1
	}
	return &FanoutService{
		store:   st,
		pusher:  pusher,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		logger:  logger,
	}
}

// FanOut writes the notice, resolves recipients for scope and delivers to
// each one. Recipients without a device token are skipped. Each delivered
// recipient gets its notification row before the push is attempted, and a
// failure on one recipient never affects the others.
func (s *FanoutService) FanOut(ctx context.Context, sender Actor, scope models.Scope, title, body string, receiverID *uint64) (FanoutResult, error) {
	title, body = strings.TrimSpace(title), strings.TrimSpace(body)
	if title == "" || body == "" {
		return FanoutResult{}, utils.ValidationError("title and body are required")
	}
	if !ScopeAllowed(sender.Role, scope) {
		return FanoutResult{}, utils.AuthorizationError("Role " + string(sender.Role) + " cannot send " + string(scope) + " notices")
	}

	recipients, err := s.resolveRecipients(ctx, sender, scope, receiverID)
	if err != nil {
		return FanoutResult{}, err
	}

	notice := models.Notice{SenderID: sender.UserID, Title: title, Body: body, Scope: scope}
	if err := s.store.CreateNotice(ctx, &notice); err != nil {
		return FanoutResult{}, storeError(err, "Notice not found")
	}

	result := FanoutResult{NoticeID: notice.NoticeID, Scope: string(scope), Recipients: len(recipients)}
	log := s.logger.With().Uint64("notice_id", notice.NoticeID).Str("scope", string(scope)).Logger()
	data := map[string]string{
		"notice_id": strconv.FormatUint(notice.NoticeID, 10),
		"scope":     string(scope),
	}

	for _, r := range recipients {
		if r.FCMToken == "" {
			result.Skipped++
			continue
		}

		row := models.Notification{
			NoticeID:   notice.NoticeID,
			SenderID:   sender.UserID,
			ReceiverID: r.UserID,
			Title:      title,
			Body:       body,
		}
		if err := s.store.InsertNotification(ctx, &row); err != nil {
			result.InsertFailed++
			log.Error().Err(err).Uint64("receiver_id", r.UserID).Msg("notification insert failed")
			continue
		}
		result.Delivered++

		if s.pusher == nil || !s.pusher.Enabled() {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			result.PushFailed++
			log.Warn().Err(err).Uint64("receiver_id", r.UserID).Msg("push skipped")
			continue
		}
		if err := s.pusher.Send(ctx, r.FCMToken, title, body, data); err != nil {
			result.PushFailed++
			log.Warn().Err(err).Uint64("receiver_id", r.UserID).Msg("push failed")
			continue
		}
		result.Pushed++
	}

	log.Info().
		Int("recipients", result.Recipients).
		Int("delivered", result.Delivered).
		Int("skipped", result.Skipped).
		Int("push_failed", result.PushFailed).
		Msg("notice fanned out")
	return result, nil
}

func (s *FanoutService) resolveRecipients(ctx context.Context, sender Actor, scope models.Scope, receiverID *uint64) ([]models.Recipient, error) {
	var (
		recipients []models.Recipient
		err        error
	)

	switch scope {
	case models.ScopeSupervisorVillage:
		details, derr := s.store.GetSupervisorDetails(ctx, sender.UserID)
		if derr != nil {
			return nil, storeError(derr, "Supervisor details not found")
		}
		recipients, err = s.store.ListAshaRecipientsByVillage(ctx, details.Village)
	case models.ScopeLHVSupervisors:
		details, derr := s.store.GetLHVDetails(ctx, sender.UserID)
		if derr != nil {
			return nil, storeError(derr, "LHV details not found")
		}
		recipients, err = s.store.ListSupervisorRecipientsByVillage(ctx, details.Village)
	case models.ScopeSupervisorTeam:
		recipients, err = s.store.ListAshaRecipientsBySupervisor(ctx, sender.AshaID)
	case models.ScopeAshaPatients:
		recipients, err = s.store.ListPatientRecipientsByAsha(ctx, sender.AshaID)
	case models.ScopeDirect:
		if receiverID == nil || *receiverID == 0 {
			return nil, utils.ValidationError("receiver_id is required")
		}
		r, rerr := s.store.GetRecipient(ctx, *receiverID)
		if rerr != nil {
			return nil, storeError(rerr, "Receiver not found")
		}
		recipients = []models.Recipient{r}
	default:
		return nil, utils.ValidationError("Unknown scope " + string(scope))
	}
	if err != nil {
		return nil, storeError(err, "Recipients not found")
	}

	// a sender never notifies itself
	out := make([]models.Recipient, 0, len(recipients))
	for _, r := range recipients {
		if r.UserID != sender.UserID {
			out = append(out, r)
		}
	}
	return out, nil
}
