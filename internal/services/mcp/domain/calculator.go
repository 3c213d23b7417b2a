// Package domain defines the MCP tools and resources for the calculator.
package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abacusweb/abacus/internal/calc"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Session holds the calculator engine shared by every tool invocation on one
// MCP connection. Tools mutate it sequentially; the mutex covers overlapping
// calls from concurrent clients on HTTP transport.
type Session struct {
	mu     sync.Mutex
	engine *calc.Engine
}

// NewSession creates a session with a fresh calculator engine.
func NewSession() *Session {
	return &Session{engine: calc.New()}
}

func (s *Session) withEngine(fn func(*calc.Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// DisplayResult reports the calculator display after a tool call.
type DisplayResult struct {
	Previous string `json:"previous,omitempty" jsonschema:"queued operand and operator, e.g. \"1,200 ÷\""`
	Current  string `json:"current" jsonschema:"current operand, result, or error message"`
	Errored  bool   `json:"errored,omitempty" jsonschema:"whether the display shows a transient error message"`
}

func (s *Session) displayResult() DisplayResult {
	var result DisplayResult
	s.withEngine(func(e *calc.Engine) {
		result = DisplayResult{
			Previous: e.PreviousLine(),
			Current:  e.CurrentLine(),
			Errored:  e.Errored(),
		}
	})
	return result
}

// AppendInput represents the MCP tool input for appending a token.
type AppendInput struct {
	Token string `json:"token" jsonschema:"single digit 0-9 or the decimal point \".\""`
}

// AppendTool defines the MCP tool schema for appending a digit or decimal
// point to the current operand.
func AppendTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calc_append",
		Description: "Appends one digit or a decimal point to the current operand. A second decimal point is ignored.",
	}
}

// AppendHandler executes an append request.
func AppendHandler(session *Session) mcp.ToolHandlerFor[AppendInput, DisplayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input AppendInput) (*mcp.CallToolResult, DisplayResult, error) {
		token := strings.TrimSpace(input.Token)
		if len([]rune(token)) != 1 {
			return nil, DisplayResult{}, fmt.Errorf("token must be a single digit or %q, got %q", string(calc.DecimalPoint), input.Token)
		}

		var appendErr error
		session.withEngine(func(e *calc.Engine) {
			appendErr = e.Append([]rune(token)[0])
		})
		if appendErr != nil {
			return nil, DisplayResult{}, fmt.Errorf("append %q: %w", token, appendErr)
		}
		return nil, session.displayResult(), nil
	}
}

// OperatorInput represents the MCP tool input for queueing an operator.
type OperatorInput struct {
	Operator string `json:"operator" jsonschema:"one of add, subtract, multiply, divide, or the symbols + - × * ÷ /"`
}

// OperatorTool defines the MCP tool schema for queueing a binary operator.
func OperatorTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calc_operator",
		Description: "Queues a binary operator. If one is already queued with a right operand, the pending operation is computed first.",
	}
}

// OperatorHandler executes an operator request.
func OperatorHandler(session *Session) mcp.ToolHandlerFor[OperatorInput, DisplayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input OperatorInput) (*mcp.CallToolResult, DisplayResult, error) {
		op, err := parseOperator(input.Operator)
		if err != nil {
			return nil, DisplayResult{}, err
		}

		var chooseErr error
		session.withEngine(func(e *calc.Engine) {
			chooseErr = e.ChooseOperator(op)
		})
		if chooseErr != nil {
			return nil, DisplayResult{}, fmt.Errorf("choose operator %q: %w", input.Operator, chooseErr)
		}
		return nil, session.displayResult(), nil
	}
}

// parseOperator maps the tool's operator names and symbols onto engine
// operators.
func parseOperator(name string) (calc.Operator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "add", "plus", "+":
		return calc.OperatorAdd, nil
	case "subtract", "sub", "minus", "-":
		return calc.OperatorSub, nil
	case "multiply", "mul", "times", "×", "*":
		return calc.OperatorMul, nil
	case "divide", "div", "÷", "/":
		return calc.OperatorDiv, nil
	}
	return calc.OperatorUnspecified, fmt.Errorf("operator %q is not supported", name)
}

// EqualsInput represents the MCP tool input for computing the pending
// operation.
type EqualsInput struct{}

// EqualsTool defines the MCP tool schema for computing the pending operation.
func EqualsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calc_equals",
		Description: "Computes the queued operation. Division by zero and overflow produce an error message on the display instead of a tool error.",
	}
}

// EqualsHandler executes an equals request.
func EqualsHandler(session *Session) mcp.ToolHandlerFor[EqualsInput, DisplayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ EqualsInput) (*mcp.CallToolResult, DisplayResult, error) {
		session.withEngine(func(e *calc.Engine) {
			e.Compute()
		})
		return nil, session.displayResult(), nil
	}
}

// PercentInput represents the MCP tool input for the percent operation.
type PercentInput struct{}

// PercentTool defines the MCP tool schema for the percent operation.
func PercentTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calc_percent",
		Description: "Divides the current operand by 100 in place. Does nothing when no operand is being typed.",
	}
}

// PercentHandler executes a percent request.
func PercentHandler(session *Session) mcp.ToolHandlerFor[PercentInput, DisplayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ PercentInput) (*mcp.CallToolResult, DisplayResult, error) {
		session.withEngine(func(e *calc.Engine) {
			e.Percent()
		})
		return nil, session.displayResult(), nil
	}
}

// DeleteInput represents the MCP tool input for deleting the last token.
type DeleteInput struct{}

// DeleteTool defines the MCP tool schema for deleting the last token.
func DeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calc_delete",
		Description: "Removes the last typed token. A displayed result or error message is discarded whole.",
	}
}

// DeleteHandler executes a delete request.
func DeleteHandler(session *Session) mcp.ToolHandlerFor[DeleteInput, DisplayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ DeleteInput) (*mcp.CallToolResult, DisplayResult, error) {
		session.withEngine(func(e *calc.Engine) {
			e.DeleteLast()
		})
		return nil, session.displayResult(), nil
	}
}

// ClearInput represents the MCP tool input for resetting the calculator.
type ClearInput struct{}

// ClearTool defines the MCP tool schema for resetting the calculator.
func ClearTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "calc_clear",
		Description: "Resets the calculator to its initial state: empty operands and no queued operator.",
	}
}

// ClearHandler executes a clear request.
func ClearHandler(session *Session) mcp.ToolHandlerFor[ClearInput, DisplayResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ClearInput) (*mcp.CallToolResult, DisplayResult, error) {
		session.withEngine(func(e *calc.Engine) {
			e.Clear()
		})
		return nil, session.displayResult(), nil
	}
}

// displayResourceURI is the readable display state resource.
const displayResourceURI = "calc://display"

// DisplayResource defines the MCP resource schema for the display state.
func DisplayResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "calc_display",
		Title:       "Calculator display",
		Description: "Readable snapshot of the two display lines and the error flag",
		MIMEType:    "application/json",
		URI:         displayResourceURI,
	}
}

// DisplayResourceHandler returns the current display state as JSON.
func DisplayResourceHandler(session *Session) mcp.ResourceHandler {
	return func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		payload, err := json.Marshal(session.displayResult())
		if err != nil {
			return nil, fmt.Errorf("marshal display state: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      displayResourceURI,
					MIMEType: "application/json",
					Text:     string(payload),
				},
			},
		}, nil
	}
}
