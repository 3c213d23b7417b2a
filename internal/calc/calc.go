// Package calc implements the arithmetic engine behind the Abacus calculator.
package calc

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Operator identifies a pending binary operation.
type Operator int

const (
	OperatorUnspecified Operator = iota
	OperatorAdd
	OperatorSub
	OperatorMul
	OperatorDiv
)

func (o Operator) String() string {
	switch o {
	case OperatorUnspecified:
		return "Unspecified"
	case OperatorAdd:
		return "Add"
	case OperatorSub:
		return "Subtract"
	case OperatorMul:
		return "Multiply"
	case OperatorDiv:
		return "Divide"
	default:
		return "Unknown"
	}
}

// Symbol returns the display glyph for the operator.
func (o Operator) Symbol() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSub:
		return "-"
	case OperatorMul:
		return "×"
	case OperatorDiv:
		return "÷"
	default:
		return ""
	}
}

// ErrInvalidToken indicates an input token outside digits and the decimal point.
var ErrInvalidToken = errors.New("token must be a digit or the decimal point")

// ErrInvalidOperator indicates an operator outside the supported set.
var ErrInvalidOperator = errors.New("operator must be add, subtract, multiply, or divide")

// DecimalPoint is the token that starts the fractional part of an operand.
const DecimalPoint = '.'

const (
	// MessageDivideByZero is shown on the current line after division by zero.
	MessageDivideByZero = "Cannot divide by zero"
	// MessageResultTooLarge is shown on the current line after overflow.
	MessageResultTooLarge = "Result too large"
)

const (
	// roundScale fixes display rounding at 8 decimal places.
	roundScale = 1e8
	// machineEpsilon nudges values sitting just under a rounding boundary.
	machineEpsilon = 2.220446049250313e-16
	// roundLimit is the magnitude above which float64 carries no fractional
	// noise worth rounding; scaling past it would overflow.
	roundLimit = 1e15
)

// Engine accumulates digit input and applies one binary operator at a time.
//
// Operands are kept as decimal strings so that backspace, leading-zero
// suppression, and a trailing decimal point behave like on-screen editing;
// values are only parsed to float64 transiently inside Compute and Percent.
//
// An Engine is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
type Engine struct {
	current          string
	previous         string
	pending          Operator
	resetOnNextInput bool
	printer          *message.Printer
}

// New creates an engine that groups displayed numbers with English separators.
func New() *Engine {
	return NewForLanguage(language.English)
}

// NewForLanguage creates an engine whose display grouping follows tag.
func NewForLanguage(tag language.Tag) *Engine {
	return &Engine{printer: message.NewPrinter(tag)}
}

// Clear resets the engine to its initial empty state. It is idempotent.
func (e *Engine) Clear() {
	e.current = ""
	e.previous = ""
	e.pending = OperatorUnspecified
	e.resetOnNextInput = false
}

// DeleteLast removes the last character of the operand being typed.
//
// Immediately after a computed result or error, the stale value is discarded
// in full rather than trimmed. Deleting from an empty operand is a no-op. The
// pending operation is never touched.
func (e *Engine) DeleteLast() {
	if e.resetOnNextInput {
		e.current = ""
		e.resetOnNextInput = false
		return
	}
	if e.current == "" {
		return
	}
	e.current = e.current[:len(e.current)-1]
}

// Append adds one digit or the decimal point to the operand being typed.
//
// The first token after a computed result starts a fresh operand. A second
// decimal point is ignored, and a leading zero is replaced rather than
// extended. Tokens outside 0-9 and '.' return ErrInvalidToken.
func (e *Engine) Append(token rune) error {
	if token != DecimalPoint && (token < '0' || token > '9') {
		return ErrInvalidToken
	}
	if e.resetOnNextInput {
		e.current = ""
		e.resetOnNextInput = false
	}
	if token == DecimalPoint && strings.ContainsRune(e.current, DecimalPoint) {
		return nil
	}
	if e.current == "0" && token != DecimalPoint {
		e.current = string(token)
		return nil
	}
	e.current += string(token)
	return nil
}

// ChooseOperator queues a binary operation on the typed operand.
//
// Choosing an operator with no operand typed only replaces an already-queued
// operator, letting the user change their mind before entering the right-hand
// side. Choosing one while a full operation is already queued computes it
// first, so `3 + 4 ×` evaluates 3+4 before queuing the multiplication. While
// the display shows an error message the call is ignored; only digit entry or
// clear leaves the error state.
func (e *Engine) ChooseOperator(op Operator) error {
	if op < OperatorAdd || op > OperatorDiv {
		return ErrInvalidOperator
	}
	if e.Errored() {
		return nil
	}
	if e.current == "" {
		if e.previous != "" {
			e.pending = op
		}
		return nil
	}
	if e.previous != "" && e.pending != OperatorUnspecified {
		e.Compute()
		if e.Errored() {
			return nil
		}
	}
	e.pending = op
	e.previous = e.current
	e.current = ""
	return nil
}

// Compute applies the pending operation and stores the result as the current
// operand.
//
// With no operation queued, or with operands that do not parse as numbers,
// Compute is a no-op: that is the idle state, not a fault. Division by zero
// and overflow surface only as display messages on the current line; the next
// digit entry discards them.
func (e *Engine) Compute() {
	left, err := strconv.ParseFloat(e.previous, 64)
	if err != nil {
		return
	}
	right, err := strconv.ParseFloat(e.current, 64)
	if err != nil {
		return
	}

	var result float64
	switch e.pending {
	case OperatorAdd:
		result = left + right
	case OperatorSub:
		result = left - right
	case OperatorMul:
		result = left * right
	case OperatorDiv:
		if right == 0 {
			e.fail(MessageDivideByZero)
			return
		}
		result = left / right
	default:
		return
	}

	if math.IsInf(result, 0) || math.IsNaN(result) {
		e.fail(MessageResultTooLarge)
		return
	}

	e.current = strconv.FormatFloat(roundResult(result), 'f', -1, 64)
	e.previous = ""
	e.pending = OperatorUnspecified
	e.resetOnNextInput = true
}

// Percent replaces the current operand with one hundredth of its value. A
// queued operation is preserved, so `200 + 10%` leaves 0.1 pending addition.
func (e *Engine) Percent() {
	value, err := strconv.ParseFloat(e.current, 64)
	if err != nil {
		return
	}
	e.current = strconv.FormatFloat(value/100, 'f', -1, 64)
	e.resetOnNextInput = true
}

// Errored reports whether the current line holds an error message instead of
// an operand. UI layers use this for transient highlight styling.
func (e *Engine) Errored() bool {
	return e.current == MessageDivideByZero || e.current == MessageResultTooLarge
}

// fail puts the engine into the displayable error state.
func (e *Engine) fail(message string) {
	e.current = message
	e.previous = ""
	e.pending = OperatorUnspecified
	e.resetOnNextInput = true
}

// roundResult trims float64 representation noise at 8 decimal places,
// rounding half away from zero, so 0.1+0.2 displays as 0.3. The sign of a
// negative zero is dropped before display.
func roundResult(value float64) float64 {
	if math.Abs(value) >= roundLimit {
		return value
	}
	nudged := value + value*machineEpsilon
	rounded := math.Round(nudged*roundScale) / roundScale
	if rounded == 0 {
		return 0
	}
	return rounded
}
