package games

// Name Five
//
// One player is dealt a prompt ("Name five movies set in space") and has
// thirty seconds to rattle off five answers out loud
// The rest of the room judges; there is no server-side answer checking
// Prompts are dealt round-robin so everyone gets put on the spot
//
// Display formats:
// - Big prompt text with a countdown
// - "We got five!" and "Pass" buttons shown only to the player on the clock
//
// Implementation details:
// - Prompt list embedded in the binary, one prompt per line
// - Round timer enforced server-side so clients can't cheat the clock
