package person

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/madkins23/go-people/mdb"
	"github.com/madkins23/go-people/mdbid"
	"github.com/madkins23/go-people/metrics"
)

// ErrNotFound is returned when an operation requires an existing person.
// It wraps mongo.ErrNoDocuments so mdb.IsNotFound() also recognizes it.
var ErrNotFound = fmt.Errorf("person not found: %w", mongo.ErrNoDocuments)

var (
	errNilPerson = errors.New("nil person")
	errNoID      = errors.New("person has no ID")
)

// Operation names used for metrics.
const (
	OpCreate     = "create"
	OpCreateMany = "create-many"
	OpFindName   = "find-name"
	OpFindFood   = "find-food"
	OpFindID     = "find-id"
	OpAppendFood = "append-food"
	OpSave       = "save"
	OpSetAge     = "set-age"
	OpDeleteID   = "delete-id"
	OpDeleteName = "delete-name"
	OpQueryFood  = "query-food"
	OpCount      = "count"
	OpDeleteAll  = "delete-all"
)

// QueryFoodLimit is the maximum number of people returned by QueryFavoriteFood.
const QueryFoodLimit = 2

// Store provides CRUD operations on the people collection.
type Store struct {
	people *mdb.TypedCollection[Person]
}

// NewStore connects to the named collection, creating it with ValidatorJSON if necessary.
// An empty collection name is replaced by DefaultCollection.
func NewStore(access *mdb.Access, collectionName string) (*Store, error) {
	if collectionName == "" {
		collectionName = DefaultCollection
	}
	people, err := mdb.ConnectTypedCollection[Person](access, &mdb.CollectionDefinition{
		Name:           collectionName,
		ValidationJSON: ValidatorJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("connect people collection: %w", err)
	}
	return &Store{people: people}, nil
}

// Collection returns the underlying typed collection.
func (s *Store) Collection() *mdb.TypedCollection[Person] {
	return s.people
}

// Create a new person in the collection.
// An ObjectID is assigned to the person if it does not already have one.
func (s *Store) Create(ctx context.Context, person *Person) (*Person, error) {
	if person == nil {
		metrics.Observe(OpCreate, false, errNilPerson)
		return nil, errNilPerson
	}
	person.EnsureID()
	person.normalize()
	err := s.people.Create(ctx, person)
	metrics.Observe(OpCreate, false, err)
	if err != nil {
		return nil, fmt.Errorf("create person '%s': %w", person.Name, err)
	}
	return person, nil
}

// CreateMany people with a single batch insert.
// The insert is not transactional, on error some people may already be stored.
func (s *Store) CreateMany(ctx context.Context, people []*Person) ([]*Person, error) {
	items := make([]interface{}, len(people))
	for i, person := range people {
		if person == nil {
			err := fmt.Errorf("person #%d: %w", i, errNilPerson)
			metrics.Observe(OpCreateMany, false, err)
			return nil, err
		}
		person.EnsureID()
		person.normalize()
		items[i] = person
	}
	err := s.people.CreateMany(ctx, items)
	metrics.Observe(OpCreateMany, false, err)
	if err != nil {
		return nil, fmt.Errorf("create %d people: %w", len(people), err)
	}
	return people, nil
}

// FindByName returns all people with the specified name, possibly none.
func (s *Store) FindByName(ctx context.Context, name string) ([]*Person, error) {
	people, err := s.people.FindAll(ctx, ByName(name))
	metrics.Observe(OpFindName, len(people) == 0, err)
	if err != nil {
		return nil, fmt.Errorf("find people named '%s': %w", name, err)
	}
	return people, nil
}

// FindOneByFavoriteFood returns the first person with the food among their favorites or nil.
func (s *Store) FindOneByFavoriteFood(ctx context.Context, food string) (*Person, error) {
	person, err := optional(s.people.Find(ctx, ByFavoriteFood(food)))
	metrics.Observe(OpFindFood, person == nil, err)
	if err != nil {
		return nil, fmt.Errorf("find person liking '%s': %w", food, err)
	}
	return person, nil
}

// FindByID returns the person with the specified ID or nil.
// Use mdbid.ParseID() to validate IDs from outside sources.
func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*Person, error) {
	person, err := optional(s.people.Find(ctx, mdbid.FilterFor(id)))
	metrics.Observe(OpFindID, person == nil, err)
	if err != nil {
		return nil, fmt.Errorf("find person %s: %w", id.Hex(), err)
	}
	return person, nil
}

// AppendFavoriteFood adds the food to the end of the person's favorites and returns the updated person.
// The update is a single atomic $push so concurrent appends are not lost.
func (s *Store) AppendFavoriteFood(ctx context.Context, id primitive.ObjectID, food string) (*Person, error) {
	person, err := s.people.FindOneAndUpdate(ctx, mdbid.FilterFor(id),
		bson.D{{Key: "$push", Value: bson.D{{Key: "favoriteFoods", Value: food}}}})
	metrics.Observe(OpAppendFood, false, err)
	if err != nil {
		if mdb.IsNotFound(err) {
			return nil, fmt.Errorf("append favorite food to %s: %w", id.Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("append favorite food to %s: %w", id.Hex(), err)
	}
	return person, nil
}

// Save replaces the stored person having the same ID with the specified person.
// This is the read-modify-write path: the last writer wins.
func (s *Store) Save(ctx context.Context, person *Person) (*Person, error) {
	if person == nil {
		metrics.Observe(OpSave, false, errNilPerson)
		return nil, errNilPerson
	} else if !person.HasID() {
		metrics.Observe(OpSave, false, errNoID)
		return nil, errNoID
	}
	person.normalize()
	err := s.people.Replace(ctx, person.Filter(), person)
	metrics.Observe(OpSave, false, err)
	if err != nil {
		if mdb.IsNotFound(err) {
			return nil, fmt.Errorf("save person %s: %w", person.ID().Hex(), ErrNotFound)
		}
		return nil, fmt.Errorf("save person %s: %w", person.ID().Hex(), err)
	}
	return person, nil
}

// SetAgeByName sets the age of the first person with the specified name and returns the updated person.
// Returns nil without error if nobody has the name.
func (s *Store) SetAgeByName(ctx context.Context, name string, age int) (*Person, error) {
	person, err := optional(s.people.FindOneAndUpdate(ctx, ByName(name),
		bson.D{{Key: "$set", Value: bson.D{{Key: "age", Value: age}}}}))
	metrics.Observe(OpSetAge, person == nil, err)
	if err != nil {
		return nil, fmt.Errorf("set age for '%s': %w", name, err)
	}
	return person, nil
}

// DeleteByID removes the person with the specified ID and returns it, or nil if there was none.
func (s *Store) DeleteByID(ctx context.Context, id primitive.ObjectID) (*Person, error) {
	person, err := optional(s.people.FindOneAndDelete(ctx, mdbid.FilterFor(id)))
	metrics.Observe(OpDeleteID, person == nil, err)
	if err != nil {
		return nil, fmt.Errorf("delete person %s: %w", id.Hex(), err)
	}
	return person, nil
}

// DeleteManyByName removes all people with the specified name and returns the number removed.
func (s *Store) DeleteManyByName(ctx context.Context, name string) (int64, error) {
	count, err := s.people.DeleteMatching(ctx, ByName(name))
	metrics.Observe(OpDeleteName, count == 0, err)
	if err != nil {
		return 0, fmt.Errorf("delete people named '%s': %w", name, err)
	}
	return count, nil
}

// QueryFavoriteFood returns up to two people with the food among their favorites,
// sorted by name with the age field left out.
func (s *Store) QueryFavoriteFood(ctx context.Context, food string) ([]*Person, error) {
	people, err := s.query(ctx, ByFavoriteFood(food), &mdb.QueryOptions{
		Sort:    mdb.Ascending("name"),
		Limit:   QueryFoodLimit,
		Exclude: []string{"age"},
	})
	metrics.Observe(OpQueryFood, len(people) == 0, err)
	if err != nil {
		return nil, fmt.Errorf("query people liking '%s': %w", food, err)
	}
	return people, nil
}

// query returns people matching the filter as shaped by the query options.
func (s *Store) query(ctx context.Context, filter interface{}, query *mdb.QueryOptions) ([]*Person, error) {
	return s.people.FindAll(ctx, filter, query.FindOptions())
}

// Count people matching the filter.
func (s *Store) Count(ctx context.Context, filter interface{}) (int64, error) {
	if filter == nil {
		filter = mdb.NoFilter()
	}
	count, err := s.people.Count(ctx, filter)
	metrics.Observe(OpCount, count == 0, err)
	return count, err
}

// DeleteAll people from the collection.
func (s *Store) DeleteAll(ctx context.Context) error {
	err := s.people.DeleteAll(ctx)
	metrics.Observe(OpDeleteAll, false, err)
	return err
}

// optional turns a not found error into a nil result without error.
func optional(person *Person, err error) (*Person, error) {
	if mdb.IsNotFound(err) {
		return nil, nil
	}
	return person, err
}
