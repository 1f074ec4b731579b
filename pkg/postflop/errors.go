package postflop

import "errors"

// ErrTooManyNodes is returned when expanding the action tree into a
// per-card arena would exceed the configured node budget.
var ErrTooManyNodes = errors.New("postflop: tree exceeds configured node budget")

// ErrEmptyRange is returned when a player's range has no combo left once
// board conflicts and zero weights are removed, or when no OOP combo can be
// paired with an IP combo without sharing a card.
var ErrEmptyRange = errors.New("postflop: range is empty after removing board conflicts")

// ErrBoardMismatch is returned when the supplied board doesn't match the
// tree config's initial street (e.g. a 3-card board with an initial
// street of Turn).
var ErrBoardMismatch = errors.New("postflop: board does not match initial street")
