package handlers

import (
	"net/http"

	"asha-backend/internal/models"
	"asha-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetInventory(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	inventory, err := h.Inventory.Get(c.Request.Context(), actor)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Inventory fetched", inventory)
}

// REPLACE INVENTORY
func (h *Handler) ReplaceInventory(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var input models.ReplaceInventoryInput
	if !h.bind(c, &input) {
		return
	}

	inventory, err := h.Inventory.Replace(c.Request.Context(), actor, input.Inventory)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusOK, true, "Inventory updated", inventory)
}

func (h *Handler) AddMedicine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var medicine models.Medicine
	if !h.bind(c, &medicine) {
		return
	}

	inventory, err := h.Inventory.AddMedicine(c.Request.Context(), actor, medicine)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.APIResponse(c, http.StatusCreated, true, "Medicine added", inventory)
}
