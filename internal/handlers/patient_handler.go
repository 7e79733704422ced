package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetPatientProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	profile, err := h.Profiles.PatientProfile(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profile fetched", profile)
}

func (h *Handler) GetPatientFamily(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	family, err := h.Profiles.Family(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Family fetched", family)
}

func (h *Handler) GetPatientConsultations(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	consultations, err := h.Records.PatientConsultations(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Consultations fetched", consultations)
}

func (h *Handler) GetConsultationSummary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	summaries, err := h.Records.ConsultationSummaries(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Consultation summary fetched", summaries)
}

// GET ONE CONSULTATION (owner only)
func (h *Handler) GetPatientConsultation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	consultation, err := h.Records.PatientConsultation(c.Request.Context(), actor, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Consultation fetched", consultation)
}

func (h *Handler) GetOwnHistory(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	history, err := h.Records.PatientHistory(c.Request.Context(), actor.PatientID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Medical history fetched", history)
}

// BOOK APPOINTMENT
func (h *Handler) BookAppointment(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.BookAppointmentInput
	if !h.bind(c, &input) {
		return
	}

	appointment, err := h.Appointments.Book(c.Request.Context(), actor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Appointment booked", appointment)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	appointments, err := h.Appointments.List(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Appointments fetched", appointments)
}

// RAISE QUERY (patient for self, ASHA on behalf of a patient)
func (h *Handler) RaiseQuery(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.PatientQueryInput
	if !h.bind(c, &input) {
		return
	}

	query, err := h.Records.RaiseQuery(c.Request.Context(), actor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Query submitted", query)
}
