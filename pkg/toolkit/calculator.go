package toolkit

import (
	"context"
	"fmt"

	"github.com/harunnryd/saku/pkg/tools"
)

// Operations the calculator accepts.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

// CalculatorSpec declares the calculate tool.
func CalculatorSpec() tools.Spec {
	return tools.Spec{
		Name:        "calculate",
		Description: "Perform a mathematical calculation",
		Params: map[string]tools.Param{
			"operation": {
				Type:        tools.TypeString,
				Description: "The mathematical operation to perform",
				Enum:        []string{OpAdd, OpSubtract, OpMultiply, OpDivide},
			},
			"a": {Type: tools.TypeNumber, Description: "The first number"},
			"b": {Type: tools.TypeNumber, Description: "The second number"},
		},
		Required: []string{"operation", "a", "b"},
	}
}

// CalculatorHandler evaluates the operation in process.
func CalculatorHandler() tools.Handler {
	return func(ctx context.Context, args tools.Args) (string, error) {
		return Calculate(args.String("operation"), args.Number("a"), args.Number("b"))
	}
}

// Calculate applies one arithmetic operation and formats the result.
// Division by zero and unknown operations are errors so the dispatcher
// can surface them as textual tool results.
func Calculate(operation string, a, b float64) (string, error) {
	var result float64
	switch operation {
	case OpAdd:
		result = a + b
	case OpSubtract:
		result = a - b
	case OpMultiply:
		result = a * b
	case OpDivide:
		if b == 0 {
			return "", fmt.Errorf("division by zero")
		}
		result = a / b
	default:
		return "", fmt.Errorf("unknown operation: %s", operation)
	}
	return fmt.Sprintf("%.2f %s %.2f = %.2f", a, operation, b, result), nil
}
