// Package history implements the undoable command contract and the bounded
// undo/redo manager that drives it.
package history

// Command is a reversible edit.
//
// Execute applies the mutation together with its side effects and Undo
// reverses both exactly. Execute may be called again after Undo (redo) and
// must reproduce the same effective state and notifications. A command that
// cannot run returns an error before it changes anything.
type Command interface {
	Execute() error
	Undo() error
	// Description is a human-readable summary fixed at construction
	Description() string
}
