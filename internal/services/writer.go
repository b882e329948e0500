package services

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/matplanerare/matplanerare/internal/docsync"
)

// DocumentWriter persists queued document operations through UpdateDocument.
// It is the local backing writer behind the sync queue.
type DocumentWriter struct {
	DB *gorm.DB
}

// Apply implements docsync.Writer.
func (w *DocumentWriter) Apply(ctx context.Context, op docsync.Op) error {
	in := UpdateInput{
		Collection: op.Collection,
		DocID:      op.DocID,
		IsDelete:   op.Delete,
	}

	if !op.Delete {
		// Op data may be any JSON-marshalable shape; normalize to the
		// map form UpdateDocument merges with.
		body, err := json.Marshal(op.Data)
		if err != nil {
			return fmt.Errorf("encode %s/%s: %w", op.Collection, op.DocID, err)
		}
		if err := json.Unmarshal(body, &in.Data); err != nil {
			return fmt.Errorf("op data for %s/%s is not a JSON object: %w",
				op.Collection, op.DocID, err)
		}
	}

	return UpdateDocument(w.DB.WithContext(ctx), in)
}
