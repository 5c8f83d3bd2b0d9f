package mdb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TypedCollection uses generics to properly create objects returned from Mongo.
type TypedCollection[T any] struct {
	Collection
}

func NewTypedCollection[T any](collection *Collection) *TypedCollection[T] {
	return &TypedCollection[T]{
		Collection: *collection,
	}
}

// ConnectTypedCollection creates a new typed collection object with the specified collection definition.
func ConnectTypedCollection[T any](access *Access, definition *CollectionDefinition) (*TypedCollection[T], error) {
	collection, err := ConnectCollection(access, definition)
	if err != nil {
		return nil, err
	}
	return NewTypedCollection[T](collection), nil
}

// Find an item in the database.
// A missing item returns a wrapped mongo.ErrNoDocuments, check with IsNotFound().
func (c *TypedCollection[T]) Find(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	item := new(T)
	if err := c.FindOne(ctx, filter, opts...).Decode(item); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}

// FindAll items matching the filter.
// Returns an empty (not nil) slice when nothing matches.
func (c *TypedCollection[T]) FindAll(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]*T, error) {
	items := make([]*T, 0)
	err := c.Iterate(ctx, filter, func(item *T) error {
		items = append(items, item)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// FindOneAndUpdate applies update operator expressions to an item and returns the updated item.
func (c *TypedCollection[T]) FindOneAndUpdate(ctx context.Context, filter, operators interface{}) (*T, error) {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	item := new(T)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := c.Collection.Collection.FindOneAndUpdate(ctx, filter, operators, opts).Decode(item); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("update item '%v': %w", filter, err)
	}

	return item, nil
}

// FindOneAndDelete removes an item and returns it as it was before removal.
func (c *TypedCollection[T]) FindOneAndDelete(ctx context.Context, filter interface{}) (*T, error) {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	item := new(T)
	if err := c.Collection.Collection.FindOneAndDelete(ctx, filter).Decode(item); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("delete item '%v': %w", filter, err)
	}

	return item, nil
}

// Iterate over a set of items, applying the specified function to each one.
// Each call to the function gets a freshly decoded item.
func (c *TypedCollection[T]) Iterate(
	ctx context.Context, filter interface{}, fn func(item *T) error, opts ...*options.FindOptions) error {
	ctx, cancel := c.ContextFor(ctx)
	defer cancel()
	var cursor *mongo.Cursor
	var err error
	if cursor, err = c.Collection.Collection.Find(ctx, filter, opts...); err != nil {
		return fmt.Errorf("find items: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	for cursor.Next(ctx) {
		item := new(T)
		if err := cursor.Decode(item); err != nil {
			return fmt.Errorf("decode item: %w", err)
		} else if err := fn(item); err != nil {
			return fmt.Errorf("apply function: %w", err)
		}
	}

	if err = cursor.Err(); err != nil {
		return fmt.Errorf("iterate items: %w", err)
	}

	return nil
}
