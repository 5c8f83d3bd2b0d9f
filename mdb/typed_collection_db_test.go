//go:build database

package mdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type typedTestSuite struct {
	AccessTestSuite
	ctx   context.Context
	typed *TypedCollection[testItem]
}

func TestTypedSuite(t *testing.T) {
	suite.Run(t, new(typedTestSuite))
}

func (suite *typedTestSuite) SetupSuite() {
	suite.AccessTestSuite.SetupSuite()
	suite.ctx = context.Background()
	suite.typed = ConnectTypedCollectionHelper[testItem](&suite.AccessTestSuite, testCollection)
}

func (suite *typedTestSuite) TearDownTest() {
	suite.NoError(suite.typed.DeleteAll(suite.ctx))
}

func (suite *typedTestSuite) TestFindNone() {
	item, err := suite.typed.Find(suite.ctx, bson.D{{Key: "alpha", Value: "beast"}})
	suite.Require().Error(err)
	suite.True(IsNotFound(err))
	suite.Nil(item)
}

func (suite *typedTestSuite) TestCreateFindDelete() {
	item := newTestItem("two", 2, "x")
	suite.Require().NoError(suite.typed.Create(suite.ctx, item))
	found, err := suite.typed.Find(suite.ctx, item.Filter())
	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal(item, found)
	deleted, err := suite.typed.FindOneAndDelete(suite.ctx, item.AlphaFilter())
	suite.Require().NoError(err)
	suite.Equal(item, deleted)
	noItem, err := suite.typed.FindOneAndDelete(suite.ctx, item.AlphaFilter())
	suite.Require().Error(err)
	suite.True(IsNotFound(err))
	suite.Nil(noItem)
}

func (suite *typedTestSuite) TestFindAll() {
	none, err := suite.typed.FindAll(suite.ctx, NoFilter())
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)

	suite.Require().NoError(suite.typed.CreateMany(suite.ctx, []interface{}{
		newTestItem("charlie", 3, "tag"),
		newTestItem("alpha", 1, "tag"),
		newTestItem("bravo", 2, "tag"),
		newTestItem("delta", 4),
	}))
	all, err := suite.typed.FindAll(suite.ctx, bson.D{{Key: "tags", Value: "tag"}},
		(&QueryOptions{Sort: Ascending("alpha"), Limit: 2, Exclude: []string{"bravo"}}).FindOptions())
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal("alpha", all[0].Alpha)
	suite.Equal("bravo", all[1].Alpha)
	for _, item := range all {
		suite.Zero(item.Bravo)
	}
}

func (suite *typedTestSuite) TestFindOneAndUpdate() {
	item := newTestItem("one", 1, "first")
	suite.Require().NoError(suite.typed.Create(suite.ctx, item))
	updated, err := suite.typed.FindOneAndUpdate(suite.ctx, item.Filter(),
		bson.D{{Key: "$push", Value: bson.D{{Key: "tags", Value: "second"}}}})
	suite.Require().NoError(err)
	suite.Equal([]string{"first", "second"}, updated.Tags)

	missing, err := suite.typed.FindOneAndUpdate(suite.ctx, bson.D{{Key: "alpha", Value: "none"}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "bravo", Value: 2}}}})
	suite.Require().Error(err)
	suite.True(IsNotFound(err))
	suite.Nil(missing)
}

func (suite *typedTestSuite) TestIterate() {
	suite.Require().NoError(suite.typed.CreateMany(suite.ctx, []interface{}{
		newTestItem("one", 1), newTestItem("two", 2),
	}))
	seen := make(map[string]*testItem)
	suite.Require().NoError(suite.typed.Iterate(suite.ctx, NoFilter(), func(item *testItem) error {
		seen[item.Alpha] = item
		return nil
	}))
	suite.Len(seen, 2)
	suite.NotSame(seen["one"], seen["two"])
}
