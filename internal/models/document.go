package models

import "time"

// StoreDocument is one document in the document store: a JSON body addressed
// by collection name and document id. Partial writes merge into Data.
type StoreDocument struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	Collection string `gorm:"size:255;not null;uniqueIndex:idx_collection_doc"`
	DocID      string `gorm:"size:255;not null;uniqueIndex:idx_collection_doc"`
	Data       JSON   `gorm:"type:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for StoreDocument
func (StoreDocument) TableName() string {
	return "store_documents"
}
