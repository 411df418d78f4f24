//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/cottand/jtype/jtype"
)

func main() {
	js.Global().Set("CheckAndShowTypes", js.FuncOf(jtype.CheckAndShowTypes))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
