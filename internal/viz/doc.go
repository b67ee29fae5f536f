// Package viz formats simulation and dice results for the terminal.
//
// Styles come from lipgloss and degrade to plain text when stdout is not a
// terminal. Numbers are grouped with golang.org/x/text so populations and
// hectares read naturally.
package viz
