package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// Prompt represents a simple interactive prompt configuration
type Prompt struct {
	Message     string
	Placeholder string
	Required    bool
}

// PromptForString displays an interactive prompt and returns the user's input
func PromptForString(p Prompt) (string, error) {
	var value string

	input := huh.NewInput().
		Title(p.Message).
		Placeholder(p.Placeholder).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if p.Required && value == "" {
		return "", fmt.Errorf("value is required")
	}

	return value, nil
}

// PromptForPassword displays a masked prompt and returns the user's input
func PromptForPassword(message string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(message).
		EchoMode(huh.EchoModePassword).
		Value(&value)

	form := huh.NewForm(huh.NewGroup(input))

	if err := form.Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}

	if value == "" {
		return "", fmt.Errorf("value is required")
	}

	return value, nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	var confirmed bool = defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
