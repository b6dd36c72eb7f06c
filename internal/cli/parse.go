package cli

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/Laila-Said/AdventureWorks2019-Insights/internal/errors"
	"github.com/Laila-Said/AdventureWorks2019-Insights/internal/operations"
)

// Command is a main menu choice
type Command int

const (
	CommandRunAll Command = iota + 1
	CommandRunSelected
	CommandRunSingle
	CommandExit
)

// String returns the menu label
func (c Command) String() string {
	switch c {
	case CommandRunAll:
		return "Process all tables"
	case CommandRunSelected:
		return "Process selected tables"
	case CommandRunSingle:
		return "Process a single table"
	case CommandExit:
		return "Exit"
	default:
		return fmt.Sprintf("command(%d)", int(c))
	}
}

// ParseChoice maps menu input "1".."4" to a command
func ParseChoice(input string) (Command, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < int(CommandRunAll) || n > int(CommandExit) {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("invalid choice %q, enter a number between 1 and 4", strings.TrimSpace(input)))
	}
	return Command(n), nil
}

// ParseSelection parses "all" or a comma separated list of 1-based table
// numbers. Numbers outside 1..n are dropped; anything that is not a number is
// an error.
func ParseSelection(input string, n int) (operations.Selection, error) {
	trimmed := strings.TrimSpace(input)
	if strings.EqualFold(trimmed, "all") {
		return operations.SelectAll(n), nil
	}
	if trimmed == "" {
		return operations.Selection{}, apperrors.NewInvalidSelectionError(input, fmt.Errorf("no tables entered"))
	}

	sel := operations.Selection{Positions: []int{}}
	for _, tok := range strings.Split(trimmed, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		pos, err := strconv.Atoi(tok)
		if err != nil {
			return operations.Selection{}, apperrors.NewInvalidSelectionError(input, fmt.Errorf("%q is not a number", tok))
		}
		if pos < 1 || pos > n {
			continue
		}
		sel.Positions = append(sel.Positions, pos)
	}
	return sel, nil
}

// ParseTableIndex parses a single 1-based table number in 1..n
func ParseTableIndex(input string, n int) (int, error) {
	pos, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || pos < 1 || pos > n {
		return 0, apperrors.NewInvalidInputError(fmt.Sprintf("invalid table number %q, enter a number between 1 and %d", strings.TrimSpace(input), n))
	}
	return pos, nil
}
