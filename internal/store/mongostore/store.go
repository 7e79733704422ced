package mongostore

import (
	"context"
	"errors"
	"time"

	"asha-backend/internal/models"
	"asha-backend/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	historyCollection   = "medical_histories"
	inventoryCollection = "chemist_inventories"
)

// Store keeps medical history and chemist inventory documents.
type Store struct {
	histories   *mongo.Collection
	inventories *mongo.Collection
	now         func() time.Time
}

var _ store.DocumentStore = (*Store)(nil)

func New(db *mongo.Database) *Store {
	return &Store{
		histories:   db.Collection(historyCollection),
		inventories: db.Collection(inventoryCollection),
		now:         time.Now,
	}
}

// EnsureIndexes makes patient_id and chemist_id unique keys.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	if _, err := s.histories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "patient_id", Value: 1}},
		Options: unique,
	}); err != nil {
		return err
	}
	_, err := s.inventories.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "chemist_id", Value: 1}},
		Options: unique,
	})
	return err
}

func (s *Store) GetHistory(ctx context.Context, patientID uint64) (models.MedicalHistory, error) {
	var doc models.MedicalHistory
	err := s.histories.FindOne(ctx, bson.M{"patient_id": patientID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MedicalHistory{}, store.ErrNotFound
	}
	if err != nil {
		return models.MedicalHistory{}, err
	}
	return doc, nil
}

// AppendVisit creates the history document on first use.
func (s *Store) AppendVisit(ctx context.Context, patientID uint64, visit models.Visit) error {
	now := s.now()
	update := bson.M{
		"$push":        bson.M{"history": visit},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"patient_id": patientID, "created_at": now},
	}
	_, err := s.histories.UpdateOne(ctx, bson.M{"patient_id": patientID}, update, options.Update().SetUpsert(true))
	return err
}

func (s *Store) GetInventory(ctx context.Context, chemistID uint64) (models.ChemistInventory, error) {
	var doc models.ChemistInventory
	err := s.inventories.FindOne(ctx, bson.M{"chemist_id": chemistID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.ChemistInventory{}, store.ErrNotFound
	}
	if err != nil {
		return models.ChemistInventory{}, err
	}
	return doc, nil
}

func (s *Store) ReplaceInventory(ctx context.Context, chemistID uint64, items []models.Medicine) (models.ChemistInventory, error) {
	if items == nil {
		items = []models.Medicine{}
	}
	now := s.now()
	update := bson.M{
		"$set":         bson.M{"inventory": items, "updated_at": now},
		"$setOnInsert": bson.M{"chemist_id": chemistID, "created_at": now},
	}
	return s.upsertInventory(ctx, chemistID, update)
}

func (s *Store) AddMedicine(ctx context.Context, chemistID uint64, medicine models.Medicine) (models.ChemistInventory, error) {
	now := s.now()
	if medicine.LastRestock == nil {
		medicine.LastRestock = &now
	}
	update := bson.M{
		"$push":        bson.M{"inventory": medicine},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"chemist_id": chemistID, "created_at": now},
	}
	return s.upsertInventory(ctx, chemistID, update)
}

func (s *Store) upsertInventory(ctx context.Context, chemistID uint64, update bson.M) (models.ChemistInventory, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc models.ChemistInventory
	if err := s.inventories.FindOneAndUpdate(ctx, bson.M{"chemist_id": chemistID}, update, opts).Decode(&doc); err != nil {
		return models.ChemistInventory{}, err
	}
	return doc, nil
}
