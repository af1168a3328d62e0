/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "amelie", fold("Amélie"))
	assert.Equal(t, "leon", fold("Léon"))
	assert.Equal(t, "the godfather", fold("The Godfather"))
	assert.Equal(t, "penelope cruz", fold("Penélope CRUZ"))
}

func TestFtsQuery(t *testing.T) {
	assert.Equal(t, `"bat"*`, ftsQuery("bat"))
	assert.Equal(t, `"big"* "leb"*`, ftsQuery("  Big   Leb "))
	assert.Equal(t, `"amelie"*`, ftsQuery("Amélie"))
	assert.Equal(t, `"bat"* "21"*`, ftsQuery("Bat*21"))
	assert.Equal(t, "", ftsQuery(""))
	assert.Equal(t, "", ftsQuery("  ***  "))
}
