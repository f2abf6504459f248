package repository

import (
	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
)

// decodeDocuments drains iter into T values. Malformed documents are logged and skipped.
func decodeDocuments[T any](iter *firestore.DocumentIterator, kind string) ([]*T, error) {
	defer iter.Stop()

	out := []*T{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate "+kind, err)
		}

		var row T
		if err := doc.DataTo(&row); err != nil {
			logger.Warn("Skipping malformed %s document %s: %v", kind, doc.Ref.ID, err)
			continue
		}
		out = append(out, &row)
	}
	return out, nil
}

// firstDocument decodes the first result of iter, or returns NOT_FOUND for resource.
func firstDocument[T any](iter *firestore.DocumentIterator, resource string) (*T, error) {
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound(resource, nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query "+resource, err)
	}

	var row T
	if err := doc.DataTo(&row); err != nil {
		return nil, errors.Internal("Failed to parse "+resource+" data", err)
	}
	return &row, nil
}
