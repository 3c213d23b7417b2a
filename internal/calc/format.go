package calc

import (
	"strconv"
	"strings"
)

// CurrentLine returns the display text for the operand line. An empty operand
// renders as "0". The rendering is display-only: it never alters the stored
// operand and calling it repeatedly returns identical strings.
func (e *Engine) CurrentLine() string {
	if e.current == "" {
		return "0"
	}
	return e.formatOperand(e.current)
}

// PreviousLine returns the display text for the queued-operation line, as
// "<left operand> <operator glyph>", or an empty string when no operation is
// queued.
func (e *Engine) PreviousLine() string {
	if e.pending == OperatorUnspecified {
		return ""
	}
	return e.formatOperand(e.previous) + " " + e.pending.Symbol()
}

// formatOperand groups the integer digits and reattaches the fractional part,
// including a lone trailing decimal point, untouched.
func (e *Engine) formatOperand(operand string) string {
	integer, fraction, hasPoint := strings.Cut(operand, string(DecimalPoint))
	formatted := e.groupInteger(integer)
	if !hasPoint {
		return formatted
	}
	return formatted + string(DecimalPoint) + fraction
}

// groupInteger inserts locale thousands separators into the integer digits.
// Content that does not parse as an integer (error messages, a bare decimal
// point, magnitudes past int64) passes through untouched.
func (e *Engine) groupInteger(digits string) string {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return e.printer.Sprintf("%d", n)
}
