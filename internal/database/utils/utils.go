package utils

import (
	"fmt"

	"cloud.google.com/go/firestore"
)

// DocSnapToType decodes the snapshot into v and backfills the document id
// when v carries an empty ID field.
func DocSnapToType(doc *firestore.DocumentSnapshot, v interface{}) error {
	if doc == nil {
		return fmt.Errorf("doc is nil")
	}

	if err := doc.DataTo(v); err != nil {
		return err
	}

	if identified, ok := v.(interface{ SetIdIfEmpty(string) }); ok {
		identified.SetIdIfEmpty(doc.Ref.ID)
	}

	return nil
}
