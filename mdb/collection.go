package mdb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection struct {
	*Access
	*mongo.Collection
}

// ConnectCollection creates a new collection object with the specified collection definition.
func ConnectCollection(access *Access, definition *CollectionDefinition) (*Collection, error) {
	collection := &Collection{}
	if err := access.CollectionConnect(collection, definition); err != nil {
		return nil, fmt.Errorf("connecting collection: %w", err)
	}
	return collection, nil
}

// ContextFor returns the specified context bounded by the collection timeout.
// A nil context is replaced by the Access base context.
func (c *Collection) ContextFor(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = c.Access.Context()
	}
	return context.WithTimeout(ctx, c.Access.config.Timeout.Collection)
}

// Count documents in collection matching filter.
func (c *Collection) Count(ctx context.Context, filter interface{}) (int64, error) {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	if count, err := c.Collection.CountDocuments(ctx, filter); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	} else {
		return count, nil
	}
}

// Create item in DB.
func (c *Collection) Create(ctx context.Context, item interface{}) error {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	if _, err := c.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	return nil
}

// CreateMany items in DB with a single InsertMany call.
// There is no transaction, items before a failing item may already be stored.
func (c *Collection) CreateMany(ctx context.Context, items []interface{}) error {
	if len(items) < 1 {
		return nil
	}

	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	if _, err := c.InsertMany(ctx, items); err != nil {
		return fmt.Errorf("insert items: %w", err)
	}

	return nil
}

// Delete item from DB.
// Set idempotent to true to avoid errors if the item does not exist.
func (c *Collection) Delete(ctx context.Context, filter interface{}, idempotent bool) error {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	result, err := c.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.DeletedCount > 1 || (result.DeletedCount == 0 && !idempotent) {
		// Should have deleted a single item or none if idempotent flag set.
		return fmt.Errorf("deleted %d items", result.DeletedCount)
	}

	return nil
}

// DeleteAll items from this collection.
func (c *Collection) DeleteAll(ctx context.Context) error {
	if _, err := c.DeleteMatching(ctx, NoFilter()); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// DeleteMatching removes all items matching the filter and returns the number removed.
func (c *Collection) DeleteMatching(ctx context.Context, filter interface{}) (int64, error) {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	result, err := c.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete items: %w", err)
	}
	return result.DeletedCount, nil
}

var errNoItemMatch = errors.New("no matching item")

// Replace entire item referenced by filter with specified item.
// If the filter matches more than one document Mongo will choose one to replace.
// A missing item is reported as a wrapped mongo.ErrNoDocuments so IsNotFound() applies.
func (c *Collection) Replace(ctx context.Context, filter, item interface{}) error {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	result, err := c.ReplaceOne(ctx, filter, item)
	if err != nil {
		return fmt.Errorf("replace item: %w", err)
	} else if result.MatchedCount < 1 {
		return fmt.Errorf("%w: %w", errNoItemMatch, mongo.ErrNoDocuments)
	}
	return nil
}

// Update item referenced by filter by applying update operator expressions.
// If the filter matches more than one document Mongo will choose one to update.
func (c *Collection) Update(ctx context.Context, filter, operators interface{}, opts ...*options.UpdateOptions) error {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	result, err := c.UpdateOne(ctx, filter, operators, opts...)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	} else if result.MatchedCount < 1 && result.UpsertedCount < 1 {
		return fmt.Errorf("%w: %w", errNoItemMatch, mongo.ErrNoDocuments)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////

// NoFilter returns an empty bson.D object for use as an empty filter.
func NoFilter() bson.D {
	return bson.D{}
}
