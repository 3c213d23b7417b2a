package web

import (
	"errors"
	"unicode/utf8"

	"github.com/abacusweb/abacus/internal/calc"
)

// errUnknownKey indicates a key name outside the calculator keypad.
var errUnknownKey = errors.New("unknown calculator key")

// applyKey translates one key name into an engine command. The glyph keys
// '×' and '÷' and the keyboard aliases live here so the engine only ever
// sees enumerated operators and digit tokens.
func applyKey(e *calc.Engine, key string) error {
	switch key {
	case "clear":
		e.Clear()
		return nil
	case "delete":
		e.DeleteLast()
		return nil
	case "=":
		e.Compute()
		return nil
	case "%":
		e.Percent()
		return nil
	case "+":
		return e.ChooseOperator(calc.OperatorAdd)
	case "-":
		return e.ChooseOperator(calc.OperatorSub)
	case "×", "*":
		return e.ChooseOperator(calc.OperatorMul)
	case "÷", "/":
		return e.ChooseOperator(calc.OperatorDiv)
	}

	if utf8.RuneCountInString(key) != 1 {
		return errUnknownKey
	}
	token, _ := utf8.DecodeRuneInString(key)
	if err := e.Append(token); err != nil {
		return errUnknownKey
	}
	return nil
}
