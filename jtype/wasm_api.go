//go:build js && wasm

package jtype

import (
	"fmt"
	"strings"
	"syscall/js"
)

// CheckAndShowTypes infers the type of the program given as first argument
// and returns it, or a description of the errors found in the program
func CheckAndShowTypes(_ js.Value, args []js.Value) (ret any) {
	defer func() {
		if r := recover(); r != nil {
			ret = "type checker panicked: " + fmt.Sprint(r)
		}
	}()
	if len(args) != 1 {
		return fmt.Sprintf("expected 1 argument, got %d", len(args))
	}

	result := Check([]byte(args[0].String()), "program.jsonnet")
	if result.Failed() {
		sb := strings.Builder{}
		sb.WriteString("the program has the following errors:\n")
		for _, diagnostic := range result.Diagnostics() {
			sb.WriteString(diagnostic)
			sb.WriteByte('\n')
		}
		return sb.String()
	}
	return result.Type
}
