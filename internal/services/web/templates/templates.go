// Package templates renders the calculator web pages.
package templates

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
	"github.com/abacusweb/abacus/internal/platform/branding"
)

// DisplayView carries the two display lines shown above the keypad.
type DisplayView struct {
	// Previous is the queued-operation line, e.g. "1,200 ÷".
	Previous string
	// Current is the operand line, or an error message.
	Current string
	// Errored styles the current line as a transient error.
	Errored bool
}

// Display renders the two-line display fragment targeted by key presses.
func Display(view DisplayView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "display"
		if view.Errored {
			class = "display display-error"
		}
		_, err := fmt.Fprintf(w,
			`<div id="display" class="%s"><div class="display-previous">%s</div><div class="display-current">%s</div></div>`,
			class, html.EscapeString(view.Previous), html.EscapeString(view.Current))
		return err
	})
}

// keypadKey describes one on-screen button.
type keypadKey struct {
	label string
	value string
	class string
}

// keypadRows lays out the calculator buttons. Values are the key names the
// /keys endpoint accepts; glyph-to-operator mapping happens server side.
var keypadRows = [][]keypadKey{
	{{label: "AC", value: "clear", class: "key-action"}, {label: "DEL", value: "delete", class: "key-action"}, {label: "%", value: "%", class: "key-action"}, {label: "÷", value: "÷", class: "key-operator"}},
	{{label: "7", value: "7"}, {label: "8", value: "8"}, {label: "9", value: "9"}, {label: "×", value: "×", class: "key-operator"}},
	{{label: "4", value: "4"}, {label: "5", value: "5"}, {label: "6", value: "6"}, {label: "-", value: "-", class: "key-operator"}},
	{{label: "1", value: "1"}, {label: "2", value: "2"}, {label: "3", value: "3"}, {label: "+", value: "+", class: "key-operator"}},
	{{label: "0", value: "0", class: "key-zero"}, {label: ".", value: "."}, {label: "=", value: "=", class: "key-equals"}},
}

// Keypad renders the button grid. Every button posts its key to /keys and
// swaps the display fragment in place.
func Keypad() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="keypad">`); err != nil {
			return err
		}
		for _, row := range keypadRows {
			for _, k := range row {
				class := "key"
				if k.class != "" {
					class += " " + k.class
				}
				_, err := fmt.Fprintf(w,
					`<button type="button" class="%s" hx-post="/keys" hx-vals='{"key":%q}' hx-target="#display" hx-swap="outerHTML">%s</button>`,
					class, k.value, html.EscapeString(k.label))
				if err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Calculator renders the display and keypad fragment for the home page.
func Calculator(view DisplayView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div class="calculator">`); err != nil {
			return err
		}
		if err := Display(view).Render(ctx, w); err != nil {
			return err
		}
		if err := Keypad().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// Home renders the full calculator page.
func Home(view DisplayView, lang string) templ.Component {
	return Layout(branding.AppName, lang, Calculator(view))
}

// Layout wraps body in the shared page shell.
func Layout(title string, lang string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if lang == "" {
			lang = "en"
		}
		_, err := fmt.Fprintf(w, `<!doctype html>
<html lang="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
<style>%s</style>
</head>
<body>
<header><h1>%s</h1></header>
<main>`, html.EscapeString(lang), html.EscapeString(title), styles, html.EscapeString(branding.AppName))
		if err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, `</main>
<script>%s</script>
</body>
</html>`, keyboardScript)
		return err
	})
}

// styles keeps the page self-contained; no asset pipeline is involved.
const styles = `
body { font-family: system-ui, sans-serif; background: #1c1c28; color: #f2f2f7; display: flex; flex-direction: column; align-items: center; }
.calculator { width: 20rem; border-radius: 1rem; background: #2a2a3a; padding: 1rem; }
.display { min-height: 4.5rem; margin-bottom: 1rem; padding: 0.5rem; text-align: right; border-radius: 0.5rem; background: #11111a; overflow-wrap: anywhere; }
.display-previous { min-height: 1.25rem; font-size: 0.9rem; color: #8e8e93; }
.display-current { font-size: 1.8rem; }
.display-error .display-current { color: #ff6b6b; animation: error-flash 0.8s ease-out; }
@keyframes error-flash { from { background: #5c1a1a; } to { background: transparent; } }
.keypad { display: grid; grid-template-columns: repeat(4, 1fr); gap: 0.5rem; }
.key { font-size: 1.2rem; padding: 0.9rem 0; border: none; border-radius: 0.5rem; background: #3a3a4d; color: inherit; cursor: pointer; }
.key:active { filter: brightness(1.3); }
.key-operator { background: #4a6fa5; }
.key-action { background: #565666; }
.key-equals { background: #c75f3e; grid-column: span 2; }
.key-zero { grid-column: span 2; }
`

// keyboardScript forwards keyboard input to the same /keys endpoint the
// buttons use.
const keyboardScript = `
document.addEventListener('keydown', function (event) {
  var key = event.key;
  if (key === 'Enter') { key = '='; }
  if (key === 'Backspace') { key = 'delete'; }
  if (key === 'Escape' || key === 'c' || key === 'C') { key = 'clear'; }
  if (key === '*') { key = '×'; }
  if (key === '/') { key = '÷'; }
  if (!/^([0-9.=%+\-]|×|÷|clear|delete)$/.test(key)) { return; }
  event.preventDefault();
  htmx.ajax('POST', '/keys', { target: '#display', swap: 'outerHTML', values: { key: key } });
});
`
