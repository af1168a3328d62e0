/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package dataset

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE movies (
	tconst TEXT PRIMARY KEY,
	primary_title TEXT NOT NULL,
	start_year INTEGER,
	num_votes INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE actors (
	nconst TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	num_votes INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE directors (
	nconst TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE movie_actors (
	tconst TEXT NOT NULL,
	nconst TEXT NOT NULL,
	PRIMARY KEY (tconst, nconst)
);
CREATE TABLE movie_directors (
	tconst TEXT NOT NULL,
	nconst TEXT NOT NULL,
	PRIMARY KEY (tconst, nconst)
);
CREATE VIRTUAL TABLE movies_fts USING fts5(
	primary_title, content='movies', content_rowid='rowid',
	tokenize='unicode61 remove_diacritics 2'
);
CREATE VIRTUAL TABLE actors_fts USING fts5(
	name, content='actors', content_rowid='rowid',
	tokenize='unicode61 remove_diacritics 2'
);
CREATE VIRTUAL TABLE directors_fts USING fts5(
	name, content='directors', content_rowid='rowid',
	tokenize='unicode61 remove_diacritics 2'
);
`

var testFixtures = []string{
	`INSERT INTO movies VALUES
		('tt0096895', 'Batman', 1989, 900),
		('tt0372784', 'Batman Begins', 2005, 900),
		('tt0096071', 'Bat*21', 1988, 10),
		('tt0211915', 'Amélie', 2001, 700),
		('tt0068646', 'The Godfather', 1972, 2000)`,
	`INSERT INTO actors VALUES
		('nm0000288', 'Christian Bale', 800),
		('nm0000323', 'Michael Caine', 750),
		('nm0000197', 'Jack Nicholson', 900),
		('nm0000199', 'Al Pacino', 850),
		('nm0000338', 'Marlon Brando', 840)`,
	`INSERT INTO directors VALUES
		('nm0000116', 'James Cameron'),
		('nm0634240', 'Christopher Nolan'),
		('nm0000038', 'Francis Ford Coppola')`,
	`INSERT INTO movie_actors VALUES
		('tt0372784', 'nm0000288'),
		('tt0372784', 'nm0000323'),
		('tt0096895', 'nm0000197'),
		('tt0068646', 'nm0000199'),
		('tt0068646', 'nm0000338')`,
	`INSERT INTO movie_directors VALUES
		('tt0372784', 'nm0634240'),
		('tt0068646', 'nm0000038')`,
	`INSERT INTO movies_fts(rowid, primary_title) SELECT rowid, primary_title FROM movies`,
	`INSERT INTO actors_fts(rowid, name) SELECT rowid, name FROM actors`,
	`INSERT INTO directors_fts(rowid, name) SELECT rowid, name FROM directors`,
}

// newTestStore builds a small dataset on disk the same way the offline
// builder does, then opens it read-only through Open.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "moviechain_core.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	for _, stmt := range testFixtures {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.sqlite"))
	require.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestOpenWrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE movies (tconst TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(path)
	require.ErrorIs(t, err, ErrDatasetUnavailable)
}

func TestSearchEmptyQuery(t *testing.T) {
	store := newTestStore(t)

	for _, query := range []string{"", "   ", "!!!"} {
		results, err := store.Search(context.Background(), query, KindMovie, 5)
		require.NoError(t, err)
		assert.Empty(t, results, "query %q", query)
	}
}

func TestSearchMoviesByPopularity(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "bat", KindMovie, 5)
	require.NoError(t, err)

	titles := make([]string, 0, len(results))
	for _, c := range results {
		titles = append(titles, c.Name)
	}
	// Popularity descending; the two 900-vote Batmans tie and fall back to
	// ascending ID (tt0096895 before tt0372784).
	assert.Equal(t, []string{"Batman", "Batman Begins", "Bat*21"}, titles)
	assert.Equal(t, 1989, results[0].Year)
}

func TestSearchNoMatches(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "zzyzx", KindMovie, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchLimitClamped(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "bat", KindMovie, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Batman", results[0].Name)

	results, err = store.Search(context.Background(), "bat", KindMovie, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchDiacriticInsensitive(t *testing.T) {
	store := newTestStore(t)

	for _, query := range []string{"amelie", "Amélie", "AMEL"} {
		results, err := store.Search(context.Background(), query, KindMovie, 5)
		require.NoError(t, err)
		require.Len(t, results, 1, "query %q", query)
		assert.Equal(t, "Amélie", results[0].Name)
	}
}

func TestSearchMultiTokenPrefix(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "batman beg", KindMovie, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Batman Begins", results[0].Name)
}

func TestSearchActorsByPopularity(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "ma", KindActor, 5)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, c := range results {
		names = append(names, c.Name)
	}
	// Prefix match is per-token: "ma" finds Marlon but not Michael.
	assert.Equal(t, []string{"Marlon Brando"}, names)
}

func TestSearchDirectorsByName(t *testing.T) {
	store := newTestStore(t)

	results, err := store.Search(context.Background(), "c", KindDirector, 5)
	require.NoError(t, err)

	names := make([]string, 0, len(results))
	for _, c := range results {
		names = append(names, c.Name)
	}
	// Directors have no popularity metric; name order, ID as tiebreak.
	assert.Equal(t, []string{"Christopher Nolan", "Francis Ford Coppola", "James Cameron"}, names)
}

func TestLinked(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	linked, err := store.Linked(ctx, "tt0372784", "nm0000288", RoleActor)
	require.NoError(t, err)
	assert.True(t, linked)

	// Nolan directed Batman Begins but is not billed in its cast.
	linked, err = store.Linked(ctx, "tt0372784", "nm0634240", RoleActor)
	require.NoError(t, err)
	assert.False(t, linked)

	linked, err = store.Linked(ctx, "tt0372784", "nm0634240", RoleDirector)
	require.NoError(t, err)
	assert.True(t, linked)

	// Unknown IDs are an ordinary "no such link", never an error.
	linked, err = store.Linked(ctx, "tt9999999", "nm9999999", RoleActor)
	require.NoError(t, err)
	assert.False(t, linked)
}

func TestLinkedAgreesWithCastAndFilmography(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	movies := []string{"tt0096895", "tt0372784", "tt0096071", "tt0211915", "tt0068646"}
	people := []string{"nm0000288", "nm0000323", "nm0000197", "nm0000199", "nm0000338"}

	for _, m := range movies {
		cast, err := store.Cast(ctx, m)
		require.NoError(t, err)

		for _, p := range people {
			linked, err := store.Linked(ctx, m, p, RoleActor)
			require.NoError(t, err)

			films, err := store.Filmography(ctx, p, RoleActor)
			require.NoError(t, err)

			assert.Equal(t, linked, contains(cast, p), "cast: movie %s person %s", m, p)
			assert.Equal(t, linked, contains(films, m), "filmography: movie %s person %s", m, p)
		}
	}
}

// The offline builder keeps only the top ten billed actors per movie, so a
// cast list is a curated subset. An absent pairing means "not linked in the
// dataset", not "never appeared together".
func TestCastIsCuratedSubset(t *testing.T) {
	store := newTestStore(t)

	cast, err := store.Cast(context.Background(), "tt0096895")
	require.NoError(t, err)
	assert.Equal(t, []string{"nm0000197"}, cast)
	assert.LessOrEqual(t, len(cast), 10)
}

func TestFilmographyByRole(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// The role picks the junction table: Brando acted in The Godfather,
	// Coppola directed it.
	acted, err := store.Filmography(ctx, "nm0000338", RoleActor)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0068646"}, acted)

	directed, err := store.Filmography(ctx, "nm0000338", RoleDirector)
	require.NoError(t, err)
	assert.Empty(t, directed)

	directed, err = store.Filmography(ctx, "nm0000038", RoleDirector)
	require.NoError(t, err)
	assert.Equal(t, []string{"tt0068646"}, directed)

	none, err := store.Filmography(ctx, "nm9999999", RoleActor)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMovieAndPersonLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m, ok, err := store.Movie(ctx, "tt0096895")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Movie{ID: "tt0096895", Title: "Batman", Year: 1989, Votes: 900}, m)

	_, ok, err = store.Movie(ctx, "tt0000000")
	require.NoError(t, err)
	assert.False(t, ok)

	p, ok, err := store.Person(ctx, "nm0000288", RoleActor)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Person{ID: "nm0000288", Name: "Christian Bale", Votes: 800}, p)

	d, ok, err := store.Person(ctx, "nm0634240", RoleDirector)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Christopher Nolan", d.Name)

	_, ok, err = store.Person(ctx, "nm0634240", RoleActor)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCounts(t *testing.T) {
	store := newTestStore(t)

	movies, actors, directors, err := store.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, movies)
	assert.Equal(t, 5, actors)
	assert.Equal(t, 3, directors)
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
