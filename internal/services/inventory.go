package services

import (
	"context"
	"errors"

	"asha-backend/internal/models"
	"asha-backend/internal/store"
)

type InventoryService struct {
	docs store.DocumentStore
}

func NewInventoryService(docs store.DocumentStore) *InventoryService {
	return &InventoryService{docs: docs}
}

// Get returns the chemist's inventory; a chemist without one has an empty list.
func (s *InventoryService) Get(ctx context.Context, chemist Actor) (models.ChemistInventory, error) {
	inv, err := s.docs.GetInventory(ctx, chemist.ChemistID)
	if errors.Is(err, store.ErrNotFound) {
		return models.ChemistInventory{ChemistID: chemist.ChemistID, Inventory: []models.Medicine{}}, nil
	}
	if err != nil {
		return models.ChemistInventory{}, storeError(err, "Inventory not found")
	}
	if inv.Inventory == nil {
		inv.Inventory = []models.Medicine{}
	}
	return inv, nil
}

func (s *InventoryService) Replace(ctx context.Context, chemist Actor, items []models.Medicine) (models.ChemistInventory, error) {
	inv, err := s.docs.ReplaceInventory(ctx, chemist.ChemistID, items)
	return inv, storeError(err, "Inventory not found")
}

func (s *InventoryService) AddMedicine(ctx context.Context, chemist Actor, medicine models.Medicine) (models.ChemistInventory, error) {
	inv, err := s.docs.AddMedicine(ctx, chemist.ChemistID, medicine)
	return inv, storeError(err, "Inventory not found")
}
