// Package games holds design notes for each game.
package games

// Movie Chain
//
// Players take turns extending a chain: a movie, then a person from that movie,
// then another movie that person was in, and so on
// Links are checked against a local movie database built offline from IMDb dumps
// Only the top ten billed actors per movie are kept, so an obscure-but-real pairing
// can still be rejected; this is a deliberate curation tradeoff to keep the database small
//
// Round rules:
// - The first movie is free; every later proposal must link to the previous one
// - A proposal that doesn't link ends the round ("broken-link")
// - Reusing a (movie, person) pair ends the round ("repeat"), even if the link is valid
//
// Display formats:
// - A search box with autocomplete, ranked by vote count so the obvious pick is first
// - The chain rendered as an alternating list of titles and names
//
// Implementation details:
// - Use websockets to push chain state to all joined players
// - Identify players by cookie on first connection
// - Turn order follows join order; each accepted proposal passes the turn
