// Package yshell contains the domain types and interfaces shared between the
// in-memory filesystem core and the command layer that drives it.
package yshell

// Exit statuses reported by the shell when it terminates.
const (
	ExitSuccess   = 0   // No command reported an error
	ExitFailure   = 1   // At least one command reported an error
	ExitMalformed = 127 // exit was given a non-numeric status
)
