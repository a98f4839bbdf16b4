// Package ui is the interactive surface: confirmations, selections and
// styled output. Operations depend on the Oracle interface so they can be
// tested with scripted answers.
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNoSelection is returned when a selection prompt has nothing to offer.
var ErrNoSelection = errors.New("nothing to select from")

// Oracle answers the questions operations ask the user.
type Oracle interface {
	// Confirm asks a yes/no question.
	Confirm(prompt string) (bool, error)

	// Choose asks the user to pick one of options.
	Choose(prompt string, options []string) (string, error)

	// FuzzySelect asks the user to pick one of items by fuzzy search and
	// returns its index.
	FuzzySelect(prompt string, items []string) (int, error)
}

// Terminal is the huh-backed Oracle used by the CLI.
type Terminal struct{}

var _ Oracle = Terminal{}

// Confirm asks a yes/no question.
func (Terminal) Confirm(prompt string) (bool, error) {
	var answer bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(prompt).Value(&answer),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation aborted: %w", err)
	}
	return answer, nil
}

// Choose asks the user to pick one of options.
func (Terminal) Choose(prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", ErrNoSelection
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(prompt).
			Options(huh.NewOptions(options...)...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("selection aborted: %w", err)
	}
	return selected, nil
}

// FuzzySelect asks the user to pick one of items with filtering enabled.
func (Terminal) FuzzySelect(prompt string, items []string) (int, error) {
	if len(items) == 0 {
		return 0, ErrNoSelection
	}

	opts := make([]huh.Option[int], 0, len(items))
	for i, item := range items {
		opts = append(opts, huh.NewOption(item, i))
	}

	var selected int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(prompt).
			Options(opts...).
			Filtering(true).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("selection aborted: %w", err)
	}
	return selected, nil
}

// ReadPassphrase prompts for a passphrase without echoing it.
func ReadPassphrase(prompt string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", prompt)
	defer fmt.Fprintln(os.Stderr)

	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(secret), nil
}
