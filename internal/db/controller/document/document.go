// Package document provides CRUD operations for schemaless JSON documents
// grouped in named collections.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/db/models"
)

// Reserved keys are owned by the store and ignored in client input.
const (
	KeyID        = "_id"
	KeyCreatedAt = "createdAt"
	KeyUpdatedAt = "updatedAt"
)

var (
	// ErrNotFound is returned when no document matches the id.
	ErrNotFound = errors.New("document not found")
	// ErrValidation is returned when the input can not be stored.
	ErrValidation = errors.New("document validation failed")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Collection describes one named document collection.
type Collection struct {
	// Name is the collection name, e.g. "purchase-orders".
	Name string
	// BeforeSave may rewrite incoming fields, on create and on update.
	BeforeSave func(fields map[string]any) error
	// Hidden keys are stored but never rendered.
	Hidden []string
}

// Fields is a decoded document body.
type Fields map[string]any

func notFound(coll Collection, uid string) error {
	return errors.WithStack(fmt.Errorf("%w: %s/%s", ErrNotFound, coll.Name, uid))
}

func clean(coll Collection, fields map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))

	for k, v := range fields {
		switch k {
		case KeyID, KeyCreatedAt, KeyUpdatedAt:
			continue
		}

		out[k] = v
	}

	if coll.BeforeSave != nil {
		if err := coll.BeforeSave(out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func decode(raw []byte) (map[string]any, error) {
	fields := map[string]any{}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	if err := dec.Decode(&fields); err != nil {
		return nil, errors.Wrap(err, "failed to decode document")
	}

	return fields, nil
}

// Decode returns the stored fields of doc, numbers as json.Number.
func Decode(doc *models.Document) (map[string]any, error) {
	return decode(doc.Data)
}

// Render returns doc as wire object: stored fields without the hidden ones
// plus the reserved keys.
func Render(coll Collection, doc *models.Document) (Fields, error) {
	fields, err := decode(doc.Data)
	if err != nil {
		return nil, err
	}

	for _, k := range coll.Hidden {
		delete(fields, k)
	}

	fields[KeyID] = doc.UID
	fields[KeyCreatedAt] = doc.CreatedAt
	fields[KeyUpdatedAt] = doc.UpdatedAt

	return fields, nil
}

// RenderAll renders a slice of documents.
func RenderAll(coll Collection, docs []models.Document) ([]Fields, error) {
	out := make([]Fields, 0, len(docs))

	for i := range docs {
		f, err := Render(coll, &docs[i])
		if err != nil {
			return nil, err
		}

		out = append(out, f)
	}

	return out, nil
}

// GetAll retrieves all documents of a collection in insertion order.
func GetAll(db *gorm.DB, coll Collection) ([]models.Document, error) {
	return Between(db, coll, time.Time{}, time.Time{})
}

// Between retrieves documents created in [from, to). Zero bounds are open.
func Between(db *gorm.DB, coll Collection, from, to time.Time) ([]models.Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Where("collection = ?", coll.Name)

	if !from.IsZero() {
		query = query.Where("created_at >= ?", from.UTC())
	}

	if !to.IsZero() {
		query = query.Where("created_at < ?", to.UTC())
	}

	docs := []models.Document{}
	if err := query.Order("id ASC").Find(&docs).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return docs, nil
}

// Get retrieves one document by its public id.
func Get(db *gorm.DB, coll Collection, uid string) (*models.Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var doc models.Document

	result := db.Where("collection = ? AND uid = ?", coll.Name, uid).Limit(1).Find(&doc)
	if result.Error != nil {
		return nil, errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, notFound(coll, uid)
	}

	return &doc, nil
}

// Create stores fields as a new document with a generated id.
func Create(db *gorm.DB, coll Collection, fields map[string]any) (*models.Document, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	cleaned, err := clean(coll, fields)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cleaned)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode document")
	}

	doc := &models.Document{
		Collection: coll.Name,
		UID:        uuid.NewString(),
		Data:       datatypes.JSON(data),
	}

	if err = db.Create(doc).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return doc, nil
}

// Update merges the top level keys of fields into the stored document.
// A key with a null value is removed.
func Update(db *gorm.DB, coll Collection, uid string, fields map[string]any) (*models.Document, error) {
	doc, err := Get(db, coll, uid)
	if err != nil {
		return nil, err
	}

	cleaned, err := clean(coll, fields)
	if err != nil {
		return nil, err
	}

	stored, err := decode(doc.Data)
	if err != nil {
		return nil, err
	}

	for k, v := range cleaned {
		if v == nil {
			delete(stored, k)
			continue
		}

		stored[k] = v
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode document")
	}

	doc.Data = datatypes.JSON(data)

	if err = db.Save(doc).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	return doc, nil
}

// Delete removes one document.
func Delete(db *gorm.DB, coll Collection, uid string) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("collection = ? AND uid = ?", coll.Name, uid).Delete(&models.Document{})
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return notFound(coll, uid)
	}

	return nil
}

// Counts returns the number of documents per collection name.
// Collections without documents are missing from the result.
func Counts(db *gorm.DB) (map[string]int64, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []struct {
		Collection string
		Total      int64
	}

	err := db.Model(&models.Document{}).
		Select("collection, COUNT(*) AS total").
		Group("collection").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.WithStack(err)
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Collection] = r.Total
	}

	return out, nil
}
