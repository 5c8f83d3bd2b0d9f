package person

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/madkins23/go-people/mdbid"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "people"

// ValidatorJSON is the $jsonSchema applied when the people collection is created.
var ValidatorJSON = `{
	"$jsonSchema": {
		"bsonType": "object",
		"properties": {
			"name": {
				"bsonType": "string"
			},
			"age": {
				"bsonType": ["int", "long"]
			},
			"favoriteFoods": {
				"bsonType": "array",
				"items": {
					"bsonType": "string"
				}
			}
		}
	}
}`

var _ mdbid.Identifier = &Person{}

// Person is a document in the people collection.
type Person struct {
	mdbid.Identity `bson:"inline"`
	Name           string   `bson:"name" json:"name"`
	Age            *int     `bson:"age,omitempty" json:"age,omitempty"`
	FavoriteFoods  []string `bson:"favoriteFoods" json:"favoriteFoods"`
}

// New returns a Person with the specified age and favorite foods.
func New(name string, age int, foods ...string) *Person {
	return &Person{
		Name:          name,
		Age:           Age(age),
		FavoriteFoods: append(make([]string, 0, len(foods)), foods...),
	}
}

// Age returns a pointer to the age for use in Person.Age.
func Age(age int) *int {
	return &age
}

// normalize replaces a nil food list so the stored document always has an array.
func (p *Person) normalize() {
	if p.FavoriteFoods == nil {
		p.FavoriteFoods = make([]string, 0)
	}
}

////////////////////////////////////////////////////////////////////////////////

// ByName returns a filter matching people with the specified name.
func ByName(name string) bson.D {
	return bson.D{{Key: "name", Value: name}}
}

// ByFavoriteFood returns a filter matching people with the food anywhere in their favorites.
func ByFavoriteFood(food string) bson.D {
	return bson.D{{Key: "favoriteFoods", Value: food}}
}
