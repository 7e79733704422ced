package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// login builds a login handler limited to the given roles. No roles means any.
func (h *Handler) login(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput

		// 1. Validate input
		if !h.bind(c, &input) {
			return
		}

		// 2. Verify credentials and issue token
		result, err := h.Auth.Login(c.Request.Context(), input, roles...)
		if err != nil {
			h.respondError(c, err)
			return
		}

		// 3. Success
		utils.APIResponse(c, http.StatusOK, true, "Login successful", result)
	}
}

func (h *Handler) Login() gin.HandlerFunc { return h.login() }

func (h *Handler) AshaLogin() gin.HandlerFunc {
	return h.login(models.RoleAsha, models.RoleSupervisor)
}

func (h *Handler) LHVLogin() gin.HandlerFunc { return h.login(models.RoleLHV) }

func (h *Handler) DoctorLogin() gin.HandlerFunc { return h.login(models.RoleDoctor) }

func (h *Handler) ChemistLogin() gin.HandlerFunc { return h.login(models.RoleChemist) }

// REGISTER SUPERVISOR
func (h *Handler) RegisterSupervisor(c *gin.Context) {
	var input models.RegisterWorkerInput
	if !h.bind(c, &input) {
		return
	}

	worker, err := h.Auth.RegisterSupervisor(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Supervisor registered successfully", worker)
}

// REGISTER ASHA (supervisor only)
func (h *Handler) RegisterAsha(c *gin.Context) {
	supervisor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.RegisterWorkerInput
	if !h.bind(c, &input) {
		return
	}

	worker, err := h.Auth.RegisterAsha(c.Request.Context(), supervisor, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "ASHA worker registered successfully", worker)
}

func (h *Handler) RegisterLHV(c *gin.Context) {
	var input models.RegisterLHVInput
	if !h.bind(c, &input) {
		return
	}

	details, err := h.Auth.RegisterLHV(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "LHV registered successfully", details)
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var input models.RegisterDoctorInput
	if !h.bind(c, &input) {
		return
	}

	doctor, err := h.Auth.RegisterDoctor(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Doctor registered successfully", doctor)
}

func (h *Handler) RegisterChemist(c *gin.Context) {
	var input models.RegisterChemistInput
	if !h.bind(c, &input) {
		return
	}

	chemist, err := h.Auth.RegisterChemist(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Chemist registered successfully", chemist)
}
