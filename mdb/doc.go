// Package mdb provides infrastructure for using Mongo from Go.
// Informational messages are logged via the zerolog logging package by default.
//
// The Access struct contains the current Mongo client and database objects.
// It is returned from the Connect() function which also pings the database.
// Visible variables can be used to change default configuration and timeouts.
// The Access object provides a Disconnect() method suitable for use with defer.
//
// In addition, the Access object can be used to construct collections.
// A CollectionDefinition carries the collection name and an optional
// $jsonSchema validation JSON string applied when the collection is first created.
// TypedCollection[T] decodes results into the specified struct type.
//
// All collection methods take a context which is further bounded by the
// collection timeout from Config.
//
// The AccessTestSuite struct is provided to wrap database connect/disconnect
// for use in tests that actually hit the database.
// The use of '//go:build database' separates these so that they are only run
// when using 'go test -tags database', without this tag only unit tests are run.
package mdb
