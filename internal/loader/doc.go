// Package loader builds the aggregated view of a character.
//
// A fetch cycle runs in two stages: the character record is fetched by identifier,
// then every film, starship and vehicle it links to is fetched concurrently, one
// sequence at a time. Results keep the order of the character's reference lists.
// The first failure aborts the rest of the cycle.
//
// Session wraps a Loader for presentation layers whose identifier changes over time
// (the interactive browser). Starting a cycle for a new identifier cancels the one in
// flight, and a cancelled cycle can never overwrite the state of a newer one.
package loader
