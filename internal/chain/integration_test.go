/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package chain

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Seednode/moviechain/internal/dataset"
)

// newBatmanStore seeds a minimal real dataset: Batman (1989) with Jack
// Nicholson and Kim Basinger billed, directed by Tim Burton, and A Few Good
// Men with Nicholson billed.
func newBatmanStore(t *testing.T) *dataset.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "moviechain_core.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	stmts := []string{
		`CREATE TABLE movies (tconst TEXT PRIMARY KEY, primary_title TEXT NOT NULL, start_year INTEGER, num_votes INTEGER NOT NULL DEFAULT 0)`,
		`CREATE TABLE actors (nconst TEXT PRIMARY KEY, name TEXT NOT NULL, num_votes INTEGER NOT NULL DEFAULT 0)`,
		`CREATE TABLE directors (nconst TEXT PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE movie_actors (tconst TEXT NOT NULL, nconst TEXT NOT NULL, PRIMARY KEY (tconst, nconst))`,
		`CREATE TABLE movie_directors (tconst TEXT NOT NULL, nconst TEXT NOT NULL, PRIMARY KEY (tconst, nconst))`,
		`CREATE VIRTUAL TABLE movies_fts USING fts5(primary_title, content='movies', content_rowid='rowid', tokenize='unicode61 remove_diacritics 2')`,
		`CREATE VIRTUAL TABLE actors_fts USING fts5(name, content='actors', content_rowid='rowid', tokenize='unicode61 remove_diacritics 2')`,
		`CREATE VIRTUAL TABLE directors_fts USING fts5(name, content='directors', content_rowid='rowid', tokenize='unicode61 remove_diacritics 2')`,
		`INSERT INTO movies VALUES ('tt0096895', 'Batman', 1989, 900), ('tt0104257', 'A Few Good Men', 1992, 500)`,
		`INSERT INTO actors VALUES ('nm0000197', 'Jack Nicholson', 900), ('nm0000106', 'Kim Basinger', 400)`,
		`INSERT INTO directors VALUES ('nm0000318', 'Tim Burton')`,
		`INSERT INTO movie_actors VALUES ('tt0096895', 'nm0000197'), ('tt0096895', 'nm0000106'), ('tt0104257', 'nm0000197')`,
		`INSERT INTO movie_directors VALUES ('tt0096895', 'nm0000318')`,
		`INSERT INTO movies_fts(rowid, primary_title) SELECT rowid, primary_title FROM movies`,
		`INSERT INTO actors_fts(rowid, name) SELECT rowid, name FROM actors`,
		`INSERT INTO directors_fts(rowid, name) SELECT rowid, name FROM directors`,
	}
	for _, stmt := range stmts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	store, err := dataset.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

// Plays a full round against the real store: chain through two movies via
// Nicholson, then replay the opening pair and hit the repeat ending.
func TestRoundAgainstStore(t *testing.T) {
	ctx := context.Background()
	store := newBatmanStore(t)
	s := NewSession(store)

	require.NoError(t, s.ProposeMovie(ctx, "tt0096895"))
	require.NoError(t, s.ProposePerson(ctx, "nm0000197", dataset.RoleActor))
	require.NoError(t, s.ProposeMovie(ctx, "tt0104257"))
	require.NoError(t, s.ProposePerson(ctx, "nm0000197", dataset.RoleActor))
	require.NoError(t, s.ProposeMovie(ctx, "tt0096895"))
	assert.Equal(t, AwaitingPerson, s.State())

	// (tt0096895, nm0000197) was the opening link.
	require.NoError(t, s.ProposePerson(ctx, "nm0000197", dataset.RoleActor))
	assert.Equal(t, Ended, s.State())
	assert.Equal(t, ReasonRepeat, s.EndReason())
	assert.Len(t, s.Links(), 2)
}

func TestRoundThroughDirector(t *testing.T) {
	ctx := context.Background()
	store := newBatmanStore(t)
	s := NewSession(store)

	require.NoError(t, s.ProposeMovie(ctx, "tt0096895"))
	require.NoError(t, s.ProposePerson(ctx, "nm0000318", dataset.RoleDirector))
	assert.Equal(t, AwaitingMovie, s.State())

	// Burton did not direct A Few Good Men.
	require.NoError(t, s.ProposeMovie(ctx, "tt0104257"))
	assert.Equal(t, Ended, s.State())
	assert.Equal(t, ReasonBrokenLink, s.EndReason())
}
