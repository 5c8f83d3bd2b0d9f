// Package test holds Person fixtures shared by tests in other packages.
// Fixtures are returned from functions since store operations assign IDs to their arguments.
package test

import (
	"github.com/madkins23/go-people/person"
)

const (
	NameChris666 = "Chris666"
	NameMary     = "Mary"
	NameNobody   = "Nobody"

	FoodBurrito   = "burrito"
	FoodHamburger = "hamburger"
)

// Chris666 returns the person saved individually.
func Chris666() *person.Person {
	return person.New(NameChris666, 27, "Pozole", "Pizza", "Burgers")
}

// Ana is the example person from the append favorite food example.
func Ana() *person.Person {
	return person.New("Ana", 30, "Tacos")
}

// ArrayOfPeople returns people for batch insertion.
func ArrayOfPeople() []*person.Person {
	return []*person.Person{
		person.New(NameChris666, 27, "Pozole", "Burgers"),
		person.New("Chris", 26, "Pozole", "Pizza"),
		person.New("Christopher", 27, "Pizza", "Burgers"),
	}
}

// Marys returns several people with the same name for deleting many at once.
func Marys() []*person.Person {
	return []*person.Person{
		person.New(NameMary, 16, "lettuce"),
		person.New(NameMary, 21, "steak"),
		person.New("Gary", 33, "lettuce"),
	}
}

// BurritoLovers returns people for the sorted, limited, projected food query.
// Three of them like burritos, more than the query limit.
func BurritoLovers() []*person.Person {
	return []*person.Person{
		person.New("Pablo", 26, FoodBurrito, "hot-dog"),
		person.New("Bob", 36, "pizza", FoodBurrito),
		person.New("Ashley", 32, "steak", "sushi"),
		person.New("Mario", 51, FoodBurrito, "prosciutto"),
	}
}
