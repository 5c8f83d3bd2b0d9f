package mdb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/madkins23/go-people/mdbid"
)

var testValidatorJSON = `{
	"$jsonSchema": {
		"bsonType": "object",
		"required": ["alpha", "bravo"],
		"properties": {
			"alpha": {
				"bsonType": "string"
			},
			"bravo": {
				"bsonType": "int"
			}
		}
	}
}`

var (
	testCollection = &CollectionDefinition{
		Name: "test-collection",
	}
	testCollectionValidation = &CollectionDefinition{
		Name:           "test-collection-validation",
		ValidationJSON: testValidatorJSON,
	}
)

type testItem struct {
	mdbid.Identity `bson:"inline"`
	Alpha          string `bson:"alpha"`
	Bravo          int    `bson:"bravo"`
	Tags           []string
}

func (ti *testItem) AlphaFilter() bson.D {
	return bson.D{{Key: "alpha", Value: ti.Alpha}}
}

func newTestItem(alpha string, bravo int, tags ...string) *testItem {
	item := &testItem{Alpha: alpha, Bravo: bravo, Tags: tags}
	item.EnsureID()
	return item
}
