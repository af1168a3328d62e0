/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package dataset reads the curated MovieChain SQLite database: movies,
// actors, directors, and the junction tables linking them. The database is
// built offline from IMDb dumps and opened read-only; nothing here writes.
package dataset

import "fmt"

// Kind selects which entity table a search runs against.
type Kind int

const (
	KindMovie Kind = iota
	KindActor
	KindDirector
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindActor:
		return "actor"
	case KindDirector:
		return "director"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps the wire names used by the web client to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "actor":
		return KindActor, true
	case "director":
		return KindDirector, true
	}
	return 0, false
}

// Role distinguishes the two ways a person can be attached to a movie.
type Role int

const (
	RoleActor Role = iota
	RoleDirector
)

func (r Role) String() string {
	if r == RoleDirector {
		return "director"
	}
	return "actor"
}

// ParseRole maps the wire names used by the web client to a Role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "actor":
		return RoleActor, true
	case "director":
		return RoleDirector, true
	}
	return 0, false
}

// Movie is one row of the movies table. IDs are IMDb tconst values ("tt...").
type Movie struct {
	ID    string
	Title string
	Year  int
	Votes int
}

// Person is one row of the actors or directors table. IDs are IMDb nconst
// values ("nm..."). Directors carry no popularity metric, so Votes is zero
// for them.
type Person struct {
	ID    string
	Name  string
	Votes int
}

// Candidate is one search result row. Year is only set for movies.
type Candidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Year  int    `json:"year,omitempty"`
	Votes int    `json:"votes"`
}
