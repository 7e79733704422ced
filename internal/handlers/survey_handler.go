package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SAVE SURVEY
func (h *Handler) SaveSurvey(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.SurveyInput
	if !h.bind(c, &input) {
		return
	}

	survey, err := h.Surveys.Save(c.Request.Context(), actor, c.Param("type"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Survey saved", survey)
}

// LIST OWN SURVEYS (?page=&limit=)
func (h *Handler) ListSurveys(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page := utils.StringToIntDefault(c.Query("page"), 1)
	limit := utils.StringToIntDefault(c.Query("limit"), 5)

	result, err := h.Surveys.ListOwn(c.Request.Context(), actor, c.Param("type"), page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Surveys fetched", result)
}

func (h *Handler) ListPatientSurveys(c *gin.Context) {
	id, ok := h.paramID(c, "id")
	if !ok {
		return
	}

	surveys, err := h.Surveys.ListByPatient(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Surveys fetched", surveys)
}

// TEAM SURVEYS ON A DATE (supervisor)
func (h *Handler) ListTeamSurveys(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	surveys, err := h.Surveys.ListTeamOnDate(c.Request.Context(), actor, c.Param("type"), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Surveys fetched", surveys)
}
