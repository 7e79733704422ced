package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GET ASHA PROFILE
func (h *Handler) GetAshaProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	profile, err := h.Profiles.AshaProfile(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profile fetched", profile)
}

// UPDATE ASHA PROFILE (phone, password, picture only)
func (h *Handler) UpdateAshaProfile(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.UpdateAshaProfileInput
	if !h.bind(c, &input) {
		return
	}

	profile, err := h.Profiles.UpdateAshaProfile(c.Request.Context(), actor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profile updated", profile)
}

// UPLOAD ASHA PICTURE
func (h *Handler) UploadAshaPicture(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	// 1. Read the multipart file
	header, err := c.FormFile("picture")
	if err != nil {
		h.respondError(c, utils.ValidationError("picture file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		h.respondError(c, utils.ValidationError("Unable to read picture"))
		return
	}
	defer file.Close()

	// 2. Upload and store the URL
	url, err := h.Profiles.UploadAshaPicture(c.Request.Context(), actor, file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Profile picture updated", gin.H{"profile_pic": url})
}

// GET PATIENTS REGISTERED BY THE CALLER
func (h *Handler) GetAshaPatients(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	patients, err := h.Profiles.PatientsOfAsha(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Patients fetched", patients)
}

// REGISTER PATIENT
func (h *Handler) RegisterPatient(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.RegisterPatientInput
	if !h.bind(c, &input) {
		return
	}

	patient, err := h.Auth.RegisterPatient(c.Request.Context(), actor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Patient registered successfully", patient)
}
