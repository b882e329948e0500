// Package services holds the document-store operations: bulk aggregate
// loading, partial document writes, and the sync writer that mirrors
// in-memory mutations back into the store.
package services

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matplanerare/matplanerare/internal/models"
	"github.com/matplanerare/matplanerare/internal/store"
)

// Collection names in the document store.
const (
	CollectionUsers     = "users"
	CollectionRecipes   = "recipes"
	CollectionMealPlans = "mealPlans"
	CollectionSettings  = "settings"

	// Before per-user documents the whole aggregate lived in a single
	// legacy document.
	LegacyCollection = "appData"
	LegacyDoc        = "main"

	SettingsDoc = "main"
)

// LoadAppData reads the whole aggregate from the document store. When only
// the legacy single-document layout is present it is fanned out into
// per-entity documents first, once, inside a transaction.
func LoadAppData(db *gorm.DB) (store.AppData, error) {
	data := store.NewAppData()

	migrated, err := migrateLegacyDocument(db)
	if err != nil {
		return data, err
	}
	if migrated {
		log.Println("Migrated legacy appData/main document to per-entity collections")
	}

	if err := loadCollection(db, CollectionUsers, func(docID string, body []byte) error {
		var u store.User
		if err := json.Unmarshal(body, &u); err != nil {
			return err
		}
		data.Users[docID] = u
		return nil
	}); err != nil {
		return data, err
	}

	if err := loadCollection(db, CollectionRecipes, func(docID string, body []byte) error {
		var r store.Recipe
		if err := json.Unmarshal(body, &r); err != nil {
			return err
		}
		if r.ID == "" {
			r.ID = docID
		}
		data.Recipes[docID] = r
		return nil
	}); err != nil {
		return data, err
	}

	if err := loadCollection(db, CollectionMealPlans, func(docID string, body []byte) error {
		var plans store.UserMealPlans
		if err := json.Unmarshal(body, &plans); err != nil {
			return err
		}
		data.MealPlans[docID] = plans
		return nil
	}); err != nil {
		return data, err
	}

	var settings struct {
		AdminUser *string `json:"adminUser"`
	}
	found, err := loadDocument(db, CollectionSettings, SettingsDoc, &settings)
	if err != nil {
		return data, err
	}
	if found {
		data.AdminUser = settings.AdminUser
	}

	return data, nil
}

// loadCollection streams every document of one collection through fn.
func loadCollection(db *gorm.DB, collection string, fn func(docID string, body []byte) error) error {
	var docs []models.StoreDocument
	if err := db.Where("collection = ?", collection).Find(&docs).Error; err != nil {
		return fmt.Errorf("load collection %s: %w", collection, err)
	}
	for _, doc := range docs {
		if err := fn(doc.DocID, doc.Data.JSON); err != nil {
			return fmt.Errorf("decode %s/%s: %w", collection, doc.DocID, err)
		}
	}
	return nil
}

// loadDocument decodes one document into out. Returns false when missing.
func loadDocument(db *gorm.DB, collection, docID string, out any) (bool, error) {
	var doc models.StoreDocument
	err := db.Where("collection = ? AND doc_id = ?", collection, docID).First(&doc).Error
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s/%s: %w", collection, docID, err)
	}
	if err := json.Unmarshal(doc.Data.JSON, out); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", collection, docID, err)
	}
	return true, nil
}

// migrateLegacyDocument fans appData/main out into per-entity documents and
// removes it. Reports whether a migration ran.
func migrateLegacyDocument(db *gorm.DB) (bool, error) {
	var legacy struct {
		Users     map[string]json.RawMessage `json:"users"`
		Recipes   map[string]json.RawMessage `json:"recipes"`
		MealPlans map[string]json.RawMessage `json:"mealPlans"`
		AdminUser *string                    `json:"adminUser"`
	}
	found, err := loadDocument(db, LegacyCollection, LegacyDoc, &legacy)
	if err != nil || !found {
		return false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		write := func(collection, docID string, body json.RawMessage) error {
			doc := models.StoreDocument{Collection: collection, DocID: docID}
			doc.Data.JSON = []byte(body)
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&doc).Error
		}

		for name, body := range legacy.Users {
			if err := write(CollectionUsers, name, body); err != nil {
				return err
			}
		}
		for id, body := range legacy.Recipes {
			if err := write(CollectionRecipes, id, body); err != nil {
				return err
			}
		}
		for user, body := range legacy.MealPlans {
			if err := write(CollectionMealPlans, user, body); err != nil {
				return err
			}
		}

		settings, err := json.Marshal(map[string]any{"adminUser": legacy.AdminUser})
		if err != nil {
			return err
		}
		if err := write(CollectionSettings, SettingsDoc, settings); err != nil {
			return err
		}

		return tx.Where("collection = ? AND doc_id = ?", LegacyCollection, LegacyDoc).
			Delete(&models.StoreDocument{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("migrate legacy document: %w", err)
	}
	return true, nil
}
