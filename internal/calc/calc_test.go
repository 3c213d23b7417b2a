package calc

import (
	"errors"
	"strings"
	"testing"
)

// typeDigits appends each rune of input to the engine, failing on any error.
func typeDigits(t *testing.T, e *Engine, input string) {
	t.Helper()
	for _, token := range input {
		if err := e.Append(token); err != nil {
			t.Fatalf("Append(%q) returned error: %v", token, err)
		}
	}
}

func TestAppendSuppressesLeadingZero(t *testing.T) {
	e := New()
	typeDigits(t, e, "05")
	if e.CurrentLine() != "5" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "5")
	}
}

func TestAppendKeepsZeroBeforeDecimalPoint(t *testing.T) {
	e := New()
	typeDigits(t, e, "0.5")
	if e.CurrentLine() != "0.5" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "0.5")
	}
}

func TestAppendRejectsSecondDecimalPoint(t *testing.T) {
	e := New()
	typeDigits(t, e, "1.2.3.4")
	if got := e.CurrentLine(); strings.Count(got, ".") != 1 {
		t.Fatalf("CurrentLine = %q, want a single decimal point", got)
	}
	if e.CurrentLine() != "1.234" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "1.234")
	}
}

func TestAppendRejectsInvalidToken(t *testing.T) {
	e := New()
	for _, token := range []rune{'x', '-', ' ', 'e'} {
		if err := e.Append(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("Append(%q) error = %v, want %v", token, err, ErrInvalidToken)
		}
	}
	if e.CurrentLine() != "0" {
		t.Fatalf("CurrentLine = %q, want untouched %q", e.CurrentLine(), "0")
	}
}

func TestAppendStartsFreshAfterResult(t *testing.T) {
	e := New()
	typeDigits(t, e, "3")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "4")
	e.Compute()
	typeDigits(t, e, "5")
	if e.CurrentLine() != "5" {
		t.Fatalf("CurrentLine = %q, want fresh operand %q", e.CurrentLine(), "5")
	}
}

func TestDeleteLast(t *testing.T) {
	e := New()
	typeDigits(t, e, "12")
	e.DeleteLast()
	if e.CurrentLine() != "1" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "1")
	}
	e.DeleteLast()
	e.DeleteLast()
	if e.CurrentLine() != "0" {
		t.Fatalf("CurrentLine = %q, want empty operand shown as %q", e.CurrentLine(), "0")
	}
}

func TestDeleteLastDiscardsStaleResult(t *testing.T) {
	e := New()
	typeDigits(t, e, "3")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "4")
	e.Compute()
	e.DeleteLast()
	if e.CurrentLine() != "0" {
		t.Fatalf("CurrentLine = %q, want stale result fully discarded", e.CurrentLine())
	}
}

func TestChooseOperatorWithoutLeftOperandIsNoop(t *testing.T) {
	e := New()
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	if e.PreviousLine() != "" {
		t.Fatalf("PreviousLine = %q, want empty", e.PreviousLine())
	}
}

func TestChooseOperatorReplacesQueuedOperator(t *testing.T) {
	e := New()
	typeDigits(t, e, "5")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	if err := e.ChooseOperator(OperatorMul); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	if e.PreviousLine() != "5 ×" {
		t.Fatalf("PreviousLine = %q, want %q", e.PreviousLine(), "5 ×")
	}
}

func TestChooseOperatorRejectsUnknownOperator(t *testing.T) {
	e := New()
	typeDigits(t, e, "5")
	if err := e.ChooseOperator(Operator(99)); !errors.Is(err, ErrInvalidOperator) {
		t.Fatalf("ChooseOperator error = %v, want %v", err, ErrInvalidOperator)
	}
}

func TestChainedOperationsEvaluateEagerly(t *testing.T) {
	e := New()
	typeDigits(t, e, "3")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "4")
	if err := e.ChooseOperator(OperatorMul); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	if e.PreviousLine() != "7 ×" {
		t.Fatalf("PreviousLine = %q, want eager 3+4 as %q", e.PreviousLine(), "7 ×")
	}
	typeDigits(t, e, "2")
	e.Compute()
	if e.CurrentLine() != "14" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "14")
	}
}

func TestComputeWithoutOperatorIsNoop(t *testing.T) {
	e := New()
	typeDigits(t, e, "42")
	e.Compute()
	if e.CurrentLine() != "42" {
		t.Fatalf("CurrentLine = %q, want untouched %q", e.CurrentLine(), "42")
	}
}

func TestDivideByZero(t *testing.T) {
	e := New()
	typeDigits(t, e, "5")
	if err := e.ChooseOperator(OperatorDiv); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "0")
	e.Compute()
	if e.CurrentLine() != MessageDivideByZero {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), MessageDivideByZero)
	}
	if !e.Errored() {
		t.Fatal("expected Errored to report true")
	}
	if e.PreviousLine() != "" {
		t.Fatalf("PreviousLine = %q, want cleared", e.PreviousLine())
	}

	typeDigits(t, e, "1")
	if e.CurrentLine() != "1" {
		t.Fatalf("CurrentLine = %q, want error discarded on digit entry", e.CurrentLine())
	}
	if e.Errored() {
		t.Fatal("expected Errored to clear after digit entry")
	}
}

func TestOverflowShowsResultTooLarge(t *testing.T) {
	e := New()
	typeDigits(t, e, "1"+strings.Repeat("0", 308))
	if err := e.ChooseOperator(OperatorMul); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "100")
	e.Compute()
	if e.CurrentLine() != MessageResultTooLarge {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), MessageResultTooLarge)
	}
	if !e.Errored() {
		t.Fatal("expected Errored to report true")
	}
}

func TestRoundingRemovesFloatNoise(t *testing.T) {
	e := New()
	typeDigits(t, e, "0.1")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "0.2")
	e.Compute()
	if e.CurrentLine() != "0.3" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "0.3")
	}
}

func TestSubtractionToZeroDropsSign(t *testing.T) {
	e := New()
	typeDigits(t, e, "5")
	if err := e.ChooseOperator(OperatorSub); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "5")
	e.Compute()
	if e.CurrentLine() != "0" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "0")
	}
}

func TestNegativeResult(t *testing.T) {
	e := New()
	typeDigits(t, e, "3")
	if err := e.ChooseOperator(OperatorSub); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "5")
	e.Compute()
	if e.CurrentLine() != "-2" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "-2")
	}
}

func TestPercentMidExpression(t *testing.T) {
	e := New()
	typeDigits(t, e, "200")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "10")
	e.Percent()
	if e.CurrentLine() != "0.1" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "0.1")
	}
	if e.PreviousLine() != "200 +" {
		t.Fatalf("PreviousLine = %q, want operation preserved as %q", e.PreviousLine(), "200 +")
	}
	e.Compute()
	if e.CurrentLine() != "200.1" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "200.1")
	}
}

func TestPercentWithoutOperandIsNoop(t *testing.T) {
	e := New()
	e.Percent()
	if e.CurrentLine() != "0" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "0")
	}
}

func TestClearIsIdempotent(t *testing.T) {
	e := New()
	typeDigits(t, e, "12.5")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	e.Clear()
	e.Clear()
	if e.CurrentLine() != "0" {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), "0")
	}
	if e.PreviousLine() != "" {
		t.Fatalf("PreviousLine = %q, want empty", e.PreviousLine())
	}
}

func TestChooseOperatorIgnoredWhileErrorDisplayed(t *testing.T) {
	e := New()
	typeDigits(t, e, "8")
	if err := e.ChooseOperator(OperatorDiv); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "0")
	e.Compute()
	if !e.Errored() {
		t.Fatal("expected Errored after dividing by zero")
	}

	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	if e.PreviousLine() != "" {
		t.Fatalf("PreviousLine = %q, want the error message not queued", e.PreviousLine())
	}
	if e.CurrentLine() != MessageDivideByZero {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), MessageDivideByZero)
	}
	if !e.Errored() {
		t.Fatal("expected Errored to stay true until digit entry or clear")
	}

	typeDigits(t, e, "2")
	if e.CurrentLine() != "2" {
		t.Fatalf("CurrentLine = %q, want fresh operand after error", e.CurrentLine())
	}
}

func TestOperatorAfterDivideByZeroDoesNotQueueMessage(t *testing.T) {
	e := New()
	typeDigits(t, e, "8")
	if err := e.ChooseOperator(OperatorDiv); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	typeDigits(t, e, "0")
	if err := e.ChooseOperator(OperatorAdd); err != nil {
		t.Fatalf("ChooseOperator returned error: %v", err)
	}
	if e.CurrentLine() != MessageDivideByZero {
		t.Fatalf("CurrentLine = %q, want %q", e.CurrentLine(), MessageDivideByZero)
	}
	if e.PreviousLine() != "" {
		t.Fatalf("PreviousLine = %q, want no queued operation", e.PreviousLine())
	}
}
