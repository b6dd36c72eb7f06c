// Package cli implements the interactive text menu: command parsing for the
// main menu and table selection, a Session loop that drives a Runner, and
// plain text run summaries.
package cli
