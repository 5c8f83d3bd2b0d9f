// Package person provides typed CRUD access to a Mongo collection of Person documents.
//
// A Store is constructed from an mdb.Access connection and is safe for concurrent use.
// Lookups that may legitimately find nothing return a nil *Person with a nil error.
// Operations whose target must exist return an error matching ErrNotFound.
// Store errors are returned wrapped, use the mdb.Is* functions to classify them.
package person
