package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/madkins23/go-people/mdbid"
	"github.com/madkins23/go-people/person"
)

// store is the part of person.Store used by the commands.
type store interface {
	Create(ctx context.Context, p *person.Person) (*person.Person, error)
	CreateMany(ctx context.Context, people []*person.Person) ([]*person.Person, error)
	FindByName(ctx context.Context, name string) ([]*person.Person, error)
	FindOneByFavoriteFood(ctx context.Context, food string) (*person.Person, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*person.Person, error)
	AppendFavoriteFood(ctx context.Context, id primitive.ObjectID, food string) (*person.Person, error)
	SetAgeByName(ctx context.Context, name string, age int) (*person.Person, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (*person.Person, error)
	DeleteManyByName(ctx context.Context, name string) (int64, error)
	QueryFavoriteFood(ctx context.Context, food string) ([]*person.Person, error)
}

var _ store = &person.Store{}

var errUsage = errors.New("usage")

// command is a parsed operation ready to run against a store.
type command struct {
	op   string
	args []string
	id   primitive.ObjectID
	age  int
}

type opSpec struct {
	minArgs int
	maxArgs int // -1 for unlimited
	usage   string
}

var operations = map[string]opSpec{
	"create":      {2, -1, "create <name> <age> [food...]"},
	"create-many": {0, 0, "create-many < people.json"},
	"find-name":   {1, 1, "find-name <name>"},
	"find-food":   {1, 1, "find-food <food>"},
	"find-id":     {1, 1, "find-id <id>"},
	"append-food": {2, 2, "append-food <id> <food>"},
	"set-age":     {2, 2, "set-age <name> <age>"},
	"delete-id":   {1, 1, "delete-id <id>"},
	"delete-name": {1, 1, "delete-name <name>"},
	"query-food":  {1, 1, "query-food <food>"},
}

// parseCommand validates the operation name and its arguments,
// converting IDs and ages before any database access.
func parseCommand(args []string) (*command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: no operation", errUsage)
	}
	cmd := &command{op: args[0], args: args[1:]}
	spec, ok := operations[cmd.op]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation '%s'", errUsage, cmd.op)
	}
	if len(cmd.args) < spec.minArgs || (spec.maxArgs >= 0 && len(cmd.args) > spec.maxArgs) {
		return nil, fmt.Errorf("%w: %s", errUsage, spec.usage)
	}

	var err error
	switch cmd.op {
	case "find-id", "append-food", "delete-id":
		if cmd.id, err = mdbid.ParseID(cmd.args[0]); err != nil {
			return nil, err
		}
	case "create", "set-age":
		if cmd.age, err = strconv.Atoi(cmd.args[1]); err != nil {
			return nil, fmt.Errorf("parse age '%s': %w", cmd.args[1], err)
		}
	}

	return cmd, nil
}

// run executes the command and writes the result to out as indented JSON.
// Absent results are written as null.
func (c *command) run(ctx context.Context, s store, in io.Reader, out io.Writer) error {
	var result interface{}
	var err error
	switch c.op {
	case "create":
		result, err = s.Create(ctx, person.New(c.args[0], c.age, c.args[2:]...))
	case "create-many":
		var people []*person.Person
		if err = json.NewDecoder(in).Decode(&people); err != nil {
			return fmt.Errorf("decode people: %w", err)
		}
		result, err = s.CreateMany(ctx, people)
	case "find-name":
		result, err = s.FindByName(ctx, c.args[0])
	case "find-food":
		result, err = s.FindOneByFavoriteFood(ctx, c.args[0])
	case "find-id":
		result, err = s.FindByID(ctx, c.id)
	case "append-food":
		result, err = s.AppendFavoriteFood(ctx, c.id, c.args[1])
	case "set-age":
		result, err = s.SetAgeByName(ctx, c.args[0], c.age)
	case "delete-id":
		result, err = s.DeleteByID(ctx, c.id)
	case "delete-name":
		var count int64
		if count, err = s.DeleteManyByName(ctx, c.args[0]); err == nil {
			result = map[string]int64{"deleted": count}
		}
	case "query-food":
		result, err = s.QueryFavoriteFood(ctx, c.args[0])
	default:
		return fmt.Errorf("%w: unknown operation '%s'", errUsage, c.op)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
