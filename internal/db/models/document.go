package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document is a schemaless JSON record belonging to one collection
// (suppliers, invoices, ...). UID is the public identifier.
type Document struct {
	ID         uint64         `gorm:"primaryKey"`
	Collection string         `gorm:"size:64;not null;uniqueIndex:idx_documents_collection_uid,priority:1"`
	UID        string         `gorm:"size:36;not null;uniqueIndex:idx_documents_collection_uid,priority:2"`
	Data       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"index"`
	UpdatedAt  time.Time
}

// TableName specifies the database table name for the Document model.
func (Document) TableName() string {
	return "documents"
}
