// Package strategy provides the built-in proposer and responder strategies.
//
// Every strategy keeps private state that persists across the rounds of one
// game, so a fresh instance must be created for each player and each game.
// Registry-built factories do exactly that for tournaments.
package strategy
