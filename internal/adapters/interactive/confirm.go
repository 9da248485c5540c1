package interactive

import (
	"context"
	"errors"
	"fmt"

	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
)

// ConfirmerAdapter asks yes/no questions on the terminal
type ConfirmerAdapter struct {
	config *config.RuntimeConfig
	run    func(label string) error
}

// NewConfirmerAdapter creates a new confirmer adapter
func NewConfirmerAdapter(cfg *config.RuntimeConfig) *ConfirmerAdapter {
	return &ConfirmerAdapter{config: cfg, run: runConfirmPrompt}
}

// Confirm returns true only on an explicit yes. Non-interactive runs never prompt.
func (c *ConfirmerAdapter) Confirm(ctx context.Context, message string) (bool, error) {
	if c.config.NonInteractive {
		return true, nil
	}

	err := c.run(color.New(color.FgYellow, color.Bold).Sprint(message))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrEOF):
		return false, nil
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}

func runConfirmPrompt(label string) error {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err
}

var _ usecase.Confirmer = (*ConfirmerAdapter)(nil)
