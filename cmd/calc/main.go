// Package main evaluates a calculator key sequence from the command line.
//
// The argument is pressed key by key, exactly as on the keypad:
//
//	calc "12+3*4="
//	calc -lang de "1234567*1000="
package main

import (
	"flag"
	"fmt"

	"github.com/abacusweb/abacus/internal/calc"
	"github.com/abacusweb/abacus/internal/platform/config"
	"github.com/abacusweb/abacus/internal/platform/i18n"
)

func main() {
	lang := flag.String("lang", "", "BCP 47 tag for digit grouping (default en-US)")
	flag.Parse()
	if flag.NArg() != 1 {
		config.Exitf("usage: calc [-lang tag] <keys>")
	}

	tag := i18n.DefaultTag()
	if *lang != "" {
		parsed, ok := i18n.ParseTag(*lang)
		if !ok {
			config.Exitf("unsupported language %q", *lang)
		}
		tag = parsed
	}

	engine := calc.NewForLanguage(tag)
	if err := press(engine, flag.Arg(0)); err != nil {
		config.Exitf("%v", err)
	}

	if line := engine.PreviousLine(); line != "" {
		fmt.Println(line)
	}
	fmt.Println(engine.CurrentLine())
}

// press feeds one key at a time into the engine. Spaces are allowed between
// keys for readability.
func press(engine *calc.Engine, keys string) error {
	for _, key := range keys {
		var err error
		switch key {
		case ' ':
			continue
		case '+':
			err = engine.ChooseOperator(calc.OperatorAdd)
		case '-':
			err = engine.ChooseOperator(calc.OperatorSub)
		case '*', '×':
			err = engine.ChooseOperator(calc.OperatorMul)
		case '/', '÷':
			err = engine.ChooseOperator(calc.OperatorDiv)
		case '%':
			engine.Percent()
		case '=':
			engine.Compute()
		case 'c', 'C':
			engine.Clear()
		default:
			err = engine.Append(key)
		}
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}
