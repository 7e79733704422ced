package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LIST DOCTORS (any authenticated user)
func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.Records.ListDoctors(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Doctors fetched", doctors)
}

// ADD TO QUEUE
func (h *Handler) AddToQueue(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.AddToQueueInput
	if !h.bind(c, &input) {
		return
	}

	entry, err := h.Queue.AddToQueue(c.Request.Context(), actor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Patient added to queue", entry)
}

// GET QUEUE (triage order)
func (h *Handler) GetQueue(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	entries, err := h.Queue.ListQueue(c.Request.Context(), actor.DoctorID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Queue fetched", entries)
}

func (h *Handler) TagEmergency(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	entry, err := h.Queue.TagEmergency(c.Request.Context(), actor, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Patient tagged as emergency", entry)
}

// START CONSULTATION
func (h *Handler) StartConsultation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	entry, err := h.Queue.StartConsultation(c.Request.Context(), actor, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Consultation started", entry)
}

// COMPLETE CONSULTATION WITH PRESCRIPTION ITEMS
func (h *Handler) CompleteConsultation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	// 1. Validate input
	var input models.ConsultationInput
	if !h.bind(c, &input) {
		return
	}

	// 2. Save consultation, clear queue, free doctor
	consultation, err := h.Queue.CompleteConsultation(c.Request.Context(), actor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// 3. Success
	utils.APIResponse(c, http.StatusCreated, true, "Consultation saved", consultation)
}

func (h *Handler) GetPatientHistory(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	history, err := h.Records.PatientHistory(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Medical history fetched", history)
}

func (h *Handler) GetDoctorQueries(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	queries, err := h.Records.DoctorQueries(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Queries fetched", queries)
}
