package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matplanerare/matplanerare/internal/models"
)

// UpdateInput is the partial-write request body
type UpdateInput struct {
	Collection string         `json:"collectionName"`
	DocID      string         `json:"docId"`
	Data       map[string]any `json:"data,omitempty"`
	IsDelete   bool           `json:"isDelete,omitempty"`
}

// UpdateDocument applies one partial write to a document. Data is merged
// field-by-field into the stored JSON body, creating the document if needed.
// A delete removes the document and is a no-op when it does not exist.
func UpdateDocument(db *gorm.DB, in UpdateInput) error {
	if in.Collection == "" || in.DocID == "" {
		return fmt.Errorf("collectionName and docId are required")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var doc models.StoreDocument
		err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Where("collection = ? AND doc_id = ?", in.Collection, in.DocID).
			First(&doc).Error

		if in.IsDelete {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			return tx.Delete(&doc).Error
		}

		existing := make(map[string]any)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			doc = models.StoreDocument{Collection: in.Collection, DocID: in.DocID}
		case err != nil:
			return err
		default:
			if len(doc.Data.JSON) > 0 {
				if err := json.Unmarshal(doc.Data.JSON, &existing); err != nil {
					return fmt.Errorf("stored document %s/%s is not a JSON object: %w",
						in.Collection, in.DocID, err)
				}
			}
		}

		merged := deepMerge(existing, in.Data)
		body, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		doc.Data.JSON = body

		return tx.Save(&doc).Error
	})
}

// deepMerge merges src into dst field by field. Nested objects merge
// recursively; everything else, null included, replaces the old value.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	for key, value := range src {
		if srcMap, ok := value.(map[string]any); ok {
			if dstMap, ok := dst[key].(map[string]any); ok {
				dst[key] = deepMerge(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
	return dst
}
