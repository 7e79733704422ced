package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/internal/services"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CREATE NOTICE
// With receiver_id the notice goes to that one user, otherwise it fans out
// over the sender role's default scope.
func (h *Handler) CreateNotice(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	// 1. Validate input
	var input models.CreateNoticeInput
	if !h.bind(c, &input) {
		return
	}

	// 2. Pick the scope
	scope := models.ScopeDirect
	if input.ReceiverID == nil {
		def, ok := services.DefaultScope(actor.Role)
		if !ok {
			h.respondError(c, utils.ValidationError("receiver_id is required for role "+string(actor.Role)))
			return
		}
		scope = def
	}

	// 3. Fan out
	result, err := h.Fanout.FanOut(c.Request.Context(), actor, scope, input.Title, input.Body, input.ReceiverID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Notice sent", result)
}

// forward fans a notice out over a fixed scope.
func (h *Handler) forward(scope models.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := h.actor(c)
		if !ok {
			return
		}

		var input models.ForwardNoticeInput
		if !h.bind(c, &input) {
			return
		}

		result, err := h.Fanout.FanOut(c.Request.Context(), actor, scope, input.Title, input.Body, nil)
		if err != nil {
			h.respondError(c, err)
			return
		}

		utils.APIResponse(c, http.StatusCreated, true, "Notice forwarded", result)
	}
}

func (h *Handler) ForwardLHVToSupervisors() gin.HandlerFunc {
	return h.forward(models.ScopeLHVSupervisors)
}

func (h *Handler) ForwardSupervisorToVillage() gin.HandlerFunc {
	return h.forward(models.ScopeSupervisorVillage)
}

func (h *Handler) ForwardSupervisorToAsha() gin.HandlerFunc {
	return h.forward(models.ScopeSupervisorTeam)
}

func (h *Handler) ForwardAshaToPatients() gin.HandlerFunc {
	return h.forward(models.ScopeAshaPatients)
}

func (h *Handler) GetNotifications(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	notifications, err := h.Notifications.Unread(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Notifications fetched", notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	if err := h.Notifications.MarkRead(c.Request.Context(), actor, id); err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Notification marked as read", nil)
}

func (h *Handler) SaveToken(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.SaveTokenInput
	if !h.bind(c, &input) {
		return
	}

	if err := h.Notifications.SaveToken(c.Request.Context(), actor, input.FCMToken); err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Token saved", nil)
}
