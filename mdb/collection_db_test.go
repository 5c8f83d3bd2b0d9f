//go:build database

package mdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type collectionTestSuite struct {
	AccessTestSuite
	ctx        context.Context
	collection *Collection
}

func TestCollectionSuite(t *testing.T) {
	suite.Run(t, new(collectionTestSuite))
}

func (suite *collectionTestSuite) SetupSuite() {
	suite.AccessTestSuite.SetupSuite()
	suite.ctx = context.Background()
	suite.collection = suite.ConnectCollection(testCollectionValidation)
}

func (suite *collectionTestSuite) TearDownTest() {
	suite.NoError(suite.collection.DeleteAll(suite.ctx))
}

func (suite *collectionTestSuite) TestConnectCollection() {
	exists, err := suite.access.CollectionExists(testCollectionValidation.Name)
	suite.Require().NoError(err)
	suite.True(exists)
	// Second connection finds the existing collection.
	collection, err := ConnectCollection(suite.access, testCollectionValidation)
	suite.Require().NoError(err)
	suite.Equal(testCollectionValidation.Name, collection.Name())
}

func (suite *collectionTestSuite) TestConnectCollection_NoName() {
	collection, err := ConnectCollection(suite.access, &CollectionDefinition{})
	suite.Error(err)
	suite.Nil(collection)
}

func (suite *collectionTestSuite) TestConnectCollection_BadValidator() {
	collection, err := ConnectCollection(suite.access, &CollectionDefinition{
		Name:           "test-collection-bad-validator",
		ValidationJSON: "{ not json",
	})
	suite.Error(err)
	suite.Nil(collection)
}

func (suite *collectionTestSuite) TestCreateCount() {
	suite.Require().NoError(suite.collection.Create(suite.ctx, newTestItem("one", 1)))
	suite.Require().NoError(suite.collection.CreateMany(suite.ctx, []interface{}{
		newTestItem("two", 2), newTestItem("three", 3),
	}))
	count, err := suite.collection.Count(suite.ctx, NoFilter())
	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
	suite.NoError(suite.collection.CreateMany(suite.ctx, nil))
}

func (suite *collectionTestSuite) TestCreateDuplicate() {
	item := newTestItem("one", 1)
	suite.Require().NoError(suite.collection.Create(suite.ctx, item))
	err := suite.collection.Create(suite.ctx, item)
	suite.Require().Error(err)
	suite.True(IsDuplicate(err))
}

func (suite *collectionTestSuite) TestCreateInvalid() {
	err := suite.collection.Create(suite.ctx, bson.M{"alpha": "invalid"})
	suite.Require().Error(err)
	suite.True(IsValidationFailure(err))
}

func (suite *collectionTestSuite) TestDelete() {
	item := newTestItem("one", 1)
	suite.Require().NoError(suite.collection.Create(suite.ctx, item))
	suite.Require().NoError(suite.collection.Delete(suite.ctx, item.Filter(), false))
	suite.Error(suite.collection.Delete(suite.ctx, item.Filter(), false))
	suite.NoError(suite.collection.Delete(suite.ctx, item.Filter(), true))
}

func (suite *collectionTestSuite) TestDeleteMatching() {
	suite.Require().NoError(suite.collection.CreateMany(suite.ctx, []interface{}{
		newTestItem("same", 1), newTestItem("same", 2), newTestItem("other", 3),
	}))
	deleted, err := suite.collection.DeleteMatching(suite.ctx, bson.D{{Key: "alpha", Value: "same"}})
	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)
	deleted, err = suite.collection.DeleteMatching(suite.ctx, bson.D{{Key: "alpha", Value: "same"}})
	suite.Require().NoError(err)
	suite.Zero(deleted)
}

func (suite *collectionTestSuite) TestReplaceUpdate() {
	item := newTestItem("one", 1)
	suite.Require().NoError(suite.collection.Create(suite.ctx, item))
	item.Bravo = 11
	suite.Require().NoError(suite.collection.Replace(suite.ctx, item.Filter(), item))
	suite.Require().NoError(suite.collection.Update(suite.ctx, item.Filter(),
		bson.D{{Key: "$set", Value: bson.D{{Key: "alpha", Value: "uno"}}}}))
	count, err := suite.collection.Count(suite.ctx, bson.D{{Key: "alpha", Value: "uno"}, {Key: "bravo", Value: 11}})
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)

	missing := newTestItem("missing", 0)
	err = suite.collection.Replace(suite.ctx, missing.Filter(), missing)
	suite.Require().Error(err)
	suite.True(IsNotFound(err))
	err = suite.collection.Update(suite.ctx, missing.Filter(), bson.D{{Key: "$set", Value: bson.D{{Key: "bravo", Value: 1}}}})
	suite.Require().Error(err)
	suite.True(IsNotFound(err))
}
