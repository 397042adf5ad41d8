package history

import (
	"errors"
	"fmt"

	"github.com/rankeditor/backend/internal/domain/shared"
)

// CompositeCommand groups commands into one undoable unit. Sub-commands run
// in insertion order and are undone in reverse.
type CompositeCommand struct {
	description string
	commands    []Command
}

// NewCompositeCommand creates an empty composite
func NewCompositeCommand(description string) *CompositeCommand {
	return &CompositeCommand{description: description}
}

// AddCommand appends a sub-command
func (c *CompositeCommand) AddCommand(cmd Command) error {
	if cmd == nil {
		return shared.RequiredArgument("command")
	}
	c.commands = append(c.commands, cmd)
	return nil
}

// Count returns the number of sub-commands
func (c *CompositeCommand) Count() int {
	return len(c.commands)
}

// Descriptions returns the sub-command descriptions in execution order
func (c *CompositeCommand) Descriptions() []string {
	out := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		out = append(out, cmd.Description())
	}
	return out
}

// Description implements Command
func (c *CompositeCommand) Description() string {
	return c.description
}

// Execute runs every sub-command in order. If one fails, the sub-commands
// already applied are undone so the composite leaves no partial state.
func (c *CompositeCommand) Execute() error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(); err != nil {
			err = fmt.Errorf("%s: %w", cmd.Description(), err)
			for j := i - 1; j >= 0; j-- {
				if rbErr := c.commands[j].Undo(); rbErr != nil {
					return errors.Join(err, rbErr)
				}
			}
			return err
		}
	}
	return nil
}

// Undo reverses every sub-command, last first. If one fails, the
// sub-commands already reversed are re-applied.
func (c *CompositeCommand) Undo() error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		cmd := c.commands[i]
		if err := cmd.Undo(); err != nil {
			err = fmt.Errorf("%s: %w", cmd.Description(), err)
			for j := i + 1; j < len(c.commands); j++ {
				if rbErr := c.commands[j].Execute(); rbErr != nil {
					return errors.Join(err, rbErr)
				}
			}
			return err
		}
	}
	return nil
}

var _ Command = (*CompositeCommand)(nil)
