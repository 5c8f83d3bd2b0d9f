package mdb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QueryOptions describes a chained find: sort order, result limit and excluded fields.
// Zero values mean unsorted, unlimited and all fields.
type QueryOptions struct {
	Sort    bson.D
	Limit   int64
	Exclude []string
}

// FindOptions converts the query options into Mongo find options.
func (qo *QueryOptions) FindOptions() *options.FindOptions {
	opts := options.Find()
	if qo == nil {
		return opts
	}

	if len(qo.Sort) > 0 {
		opts.SetSort(qo.Sort)
	}
	if qo.Limit > 0 {
		opts.SetLimit(qo.Limit)
	}
	if len(qo.Exclude) > 0 {
		projection := bson.D{}
		for _, field := range qo.Exclude {
			projection = append(projection, bson.E{Key: field, Value: 0})
		}
		opts.SetProjection(projection)
	}

	return opts
}

// Ascending returns a sort specification in ascending order for the specified fields.
func Ascending(fields ...string) bson.D {
	sort := bson.D{}
	for _, field := range fields {
		sort = append(sort, bson.E{Key: field, Value: 1})
	}
	return sort
}
