/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrDatasetUnavailable is returned by Open when the database file is
// missing, unreadable, or not a MovieChain dataset. There is no degraded
// mode; the caller is expected to treat this as fatal.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// MaxSearchLimit caps how many candidates a single search may return.
const MaxSearchLimit = 20

// expectedTables are the tables the offline builder creates. The *_fts
// entries are FTS5 virtual tables over the title/name columns.
var expectedTables = []string{
	"movies",
	"actors",
	"directors",
	"movie_actors",
	"movie_directors",
	"movies_fts",
	"actors_fts",
	"directors_fts",
}

// Store wraps a read-only handle to the curated dataset. All methods are
// safe for concurrent use; the underlying database never changes once built.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite dataset at path read-only and verifies the expected
// schema is present. Any failure is reported as ErrDatasetUnavailable.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	s := &Store{db: db}
	if err := s.verify(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrDatasetUnavailable, err)
	}

	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) verify() error {
	for _, table := range expectedTables {
		var name string
		err := s.db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("missing table %q", table)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Counts reports the number of movies, actors, and directors in the dataset.
func (s *Store) Counts(ctx context.Context) (movies, actors, directors int, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT (SELECT count(*) FROM movies),
		       (SELECT count(*) FROM actors),
		       (SELECT count(*) FROM directors)`)
	err = row.Scan(&movies, &actors, &directors)
	return
}

// Search returns up to limit candidates whose title or name has tokens
// prefixed by every token of query, most popular first (ties broken by
// ascending ID). Directors carry no popularity metric and sort by name.
// An empty or unsearchable query yields an empty result, not an error.
func (s *Store) Search(ctx context.Context, query string, kind Kind, limit int) ([]Candidate, error) {
	match := ftsQuery(query)
	if match == "" {
		return nil, nil
	}

	if limit < 1 {
		limit = 1
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	var stmt string
	switch kind {
	case KindMovie:
		stmt = `
			SELECT m.tconst, m.primary_title, COALESCE(m.start_year, 0), m.num_votes
			FROM movies_fts
			JOIN movies m ON m.rowid = movies_fts.rowid
			WHERE movies_fts MATCH ?
			ORDER BY m.num_votes DESC, m.tconst
			LIMIT ?`
	case KindActor:
		stmt = `
			SELECT a.nconst, a.name, 0, a.num_votes
			FROM actors_fts
			JOIN actors a ON a.rowid = actors_fts.rowid
			WHERE actors_fts MATCH ?
			ORDER BY a.num_votes DESC, a.nconst
			LIMIT ?`
	case KindDirector:
		stmt = `
			SELECT d.nconst, d.name, 0, 0
			FROM directors_fts
			JOIN directors d ON d.rowid = directors_fts.rowid
			WHERE directors_fts MATCH ?
			ORDER BY d.name, d.nconst
			LIMIT ?`
	default:
		return nil, fmt.Errorf("unknown search kind: %d", int(kind))
	}

	rows, err := s.db.QueryContext(ctx, stmt, match, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Year, &c.Votes); err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	return candidates, rows.Err()
}

// Linked reports whether the dataset records person as an actor in (or
// director of) the given movie. Unknown IDs are an ordinary false.
func (s *Store) Linked(ctx context.Context, movieID, personID string, role Role) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM `+junctionTable(role)+` WHERE tconst = ? AND nconst = ?`,
		movieID, personID,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Cast returns the actor IDs billed for a movie. The offline builder keeps
// only the top ten billed actors per movie, so this is a curated subset,
// not a complete cast list.
func (s *Store) Cast(ctx context.Context, movieID string) ([]string, error) {
	return s.idColumn(ctx,
		`SELECT nconst FROM movie_actors WHERE tconst = ? ORDER BY nconst`, movieID)
}

// Filmography returns the movie IDs a person appears in (or directed).
// Subject to the same top-billing curation as Cast.
func (s *Store) Filmography(ctx context.Context, personID string, role Role) ([]string, error) {
	return s.idColumn(ctx,
		`SELECT tconst FROM `+junctionTable(role)+` WHERE nconst = ? ORDER BY tconst`, personID)
}

// Movie looks up a movie by ID. The second return is false when no such
// movie exists.
func (s *Store) Movie(ctx context.Context, id string) (Movie, bool, error) {
	var m Movie
	err := s.db.QueryRowContext(ctx,
		`SELECT tconst, primary_title, COALESCE(start_year, 0), num_votes FROM movies WHERE tconst = ?`, id,
	).Scan(&m.ID, &m.Title, &m.Year, &m.Votes)
	if errors.Is(err, sql.ErrNoRows) {
		return Movie{}, false, nil
	}
	if err != nil {
		return Movie{}, false, err
	}
	return m, true, nil
}

// Person looks up an actor or director by ID. The second return is false
// when no such person exists in the table for that role.
func (s *Store) Person(ctx context.Context, id string, role Role) (Person, bool, error) {
	var (
		p   Person
		err error
	)
	if role == RoleDirector {
		err = s.db.QueryRowContext(ctx,
			`SELECT nconst, name FROM directors WHERE nconst = ?`, id,
		).Scan(&p.ID, &p.Name)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT nconst, name, num_votes FROM actors WHERE nconst = ?`, id,
		).Scan(&p.ID, &p.Name, &p.Votes)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Person{}, false, nil
	}
	if err != nil {
		return Person{}, false, err
	}
	return p, true, nil
}

func (s *Store) idColumn(ctx context.Context, stmt, arg string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, stmt, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func junctionTable(role Role) string {
	if role == RoleDirector {
		return "movie_directors"
	}
	return "movie_actors"
}
