package history

import (
	"fmt"

	"github.com/rankeditor/backend/internal/domain/shared"
)

// PropertyChangeCommand sets a single scalar field through setter
type PropertyChangeCommand[T any] struct {
	setter       func(T)
	oldValue     T
	newValue     T
	propertyName string
	ownerLabel   string
}

// NewPropertyChangeCommand creates a command that applies newValue and
// restores oldValue on undo
func NewPropertyChangeCommand[T any](setter func(T), oldValue, newValue T, propertyName, ownerLabel string) (*PropertyChangeCommand[T], error) {
	if setter == nil {
		return nil, shared.RequiredArgument("setter")
	}
	return &PropertyChangeCommand[T]{
		setter:       setter,
		oldValue:     oldValue,
		newValue:     newValue,
		propertyName: propertyName,
		ownerLabel:   ownerLabel,
	}, nil
}

// Execute applies the new value
func (c *PropertyChangeCommand[T]) Execute() error {
	c.setter(c.newValue)
	return nil
}

// Undo restores the old value
func (c *PropertyChangeCommand[T]) Undo() error {
	c.setter(c.oldValue)
	return nil
}

// Description implements Command
func (c *PropertyChangeCommand[T]) Description() string {
	return fmt.Sprintf("Change %s of '%s' from '%v' to '%v'", c.propertyName, c.ownerLabel, c.oldValue, c.newValue)
}

// OldValue returns the value restored by Undo
func (c *PropertyChangeCommand[T]) OldValue() T {
	return c.oldValue
}

// NewValue returns the value applied by Execute
func (c *PropertyChangeCommand[T]) NewValue() T {
	return c.newValue
}
