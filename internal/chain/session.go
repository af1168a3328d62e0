/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package chain holds the turn state for one MovieChain round: players
// alternate between naming a movie and naming a person attached to it,
// and the round ends on the first broken or repeated link.
package chain

import (
	"context"
	"errors"

	"github.com/Seednode/moviechain/internal/dataset"
)

// ErrInvalidState is returned when a proposal arrives in a state that does
// not accept it, including after the session has ended. This indicates a
// caller bug, not a lost round.
var ErrInvalidState = errors.New("invalid session state")

// State is the session's position in the movie/person alternation.
type State int

const (
	AwaitingMovie State = iota
	AwaitingPerson
	Ended
)

func (s State) String() string {
	switch s {
	case AwaitingMovie:
		return "awaiting-movie"
	case AwaitingPerson:
		return "awaiting-person"
	case Ended:
		return "ended"
	}
	return "unknown"
}

// EndReason records why a session ended.
type EndReason string

const (
	ReasonNone       EndReason = ""
	ReasonBrokenLink EndReason = "broken-link"
	ReasonRepeat     EndReason = "repeat"
)

// Link is one validated (movie, person) hop.
type Link struct {
	MovieID  string
	PersonID string
	Role     dataset.Role
}

// Linker answers whether a (movie, person) association exists in the
// dataset. *dataset.Store satisfies this.
type Linker interface {
	Linked(ctx context.Context, movieID, personID string, role dataset.Role) (bool, error)
}

// Session is the state for one round. It is not internally locked: exactly
// one caller (the hub goroutine owning the round) mutates it at a time.
type Session struct {
	linker Linker

	state        State
	reason       EndReason
	movieAnchor  string
	personAnchor string
	personRole   dataset.Role

	visited map[visit]struct{}
	links   []Link
}

type visit struct {
	movieID  string
	personID string
}

// NewSession starts a round in AwaitingMovie with no anchor, so the first
// movie is accepted without validation.
func NewSession(linker Linker) *Session {
	return &Session{
		linker:  linker,
		state:   AwaitingMovie,
		visited: make(map[visit]struct{}),
	}
}

func (s *Session) State() State         { return s.state }
func (s *Session) EndReason() EndReason { return s.reason }

// CurrentMovie returns the movie anchor, or "" before the first movie.
func (s *Session) CurrentMovie() string { return s.movieAnchor }

// CurrentPerson returns the person anchor and their role, or "" before the
// first completed link.
func (s *Session) CurrentPerson() (string, dataset.Role) {
	return s.personAnchor, s.personRole
}

// Links returns the hops completed so far, oldest first.
func (s *Session) Links() []Link {
	out := make([]Link, len(s.links))
	copy(out, s.links)
	return out
}

// ProposeMovie accepts a movie in AwaitingMovie. Once a person anchor exists
// the movie must be linked to them; a broken link ends the session rather
// than erroring. On success the movie becomes the anchor and the session
// moves to AwaitingPerson.
func (s *Session) ProposeMovie(ctx context.Context, movieID string) error {
	if s.state != AwaitingMovie {
		return ErrInvalidState
	}

	if s.personAnchor != "" {
		linked, err := s.linker.Linked(ctx, movieID, s.personAnchor, s.personRole)
		if err != nil {
			return err
		}
		if !linked {
			s.end(ReasonBrokenLink)
			return nil
		}
	}

	s.movieAnchor = movieID
	s.state = AwaitingPerson

	return nil
}

// ProposePerson accepts a person in AwaitingPerson. The person must be
// linked to the anchor movie (else the session ends broken-link), and the
// (movie, person) pair must not have been used before in this session
// (else it ends repeat, even though the link itself is valid). On success
// the hop is recorded, the person becomes the anchor, and the session moves
// back to AwaitingMovie.
func (s *Session) ProposePerson(ctx context.Context, personID string, role dataset.Role) error {
	if s.state != AwaitingPerson {
		return ErrInvalidState
	}

	linked, err := s.linker.Linked(ctx, s.movieAnchor, personID, role)
	if err != nil {
		return err
	}
	if !linked {
		s.end(ReasonBrokenLink)
		return nil
	}

	v := visit{movieID: s.movieAnchor, personID: personID}
	if _, seen := s.visited[v]; seen {
		s.end(ReasonRepeat)
		return nil
	}

	s.visited[v] = struct{}{}
	s.links = append(s.links, Link{
		MovieID:  s.movieAnchor,
		PersonID: personID,
		Role:     role,
	})
	s.personAnchor = personID
	s.personRole = role
	s.state = AwaitingMovie

	return nil
}

func (s *Session) end(reason EndReason) {
	s.state = Ended
	s.reason = reason
}
