//go:build js && wasm

// Command wasm exposes the drawing engine to the browser via WebAssembly.
// After loading, it registers two global JavaScript functions:
//
//	planJob(jsonString) -> jsonString
//	runJob(jsonString) -> jsonString
//
// Both take a JSON-encoded JobInput. planJob returns the JobPlan and runJob
// the JobLog, matching the contract used by the CLI.
package main

import (
	"syscall/js"

	"github.com/rgyhuang/BoardBot/internal/engine"
)

func main() {
	js.Global().Set("planJob", js.FuncOf(wrap(engine.PlanJSON)))
	js.Global().Set("runJob", js.FuncOf(wrap(engine.RunJSON)))
	select {} // keep the WASM module alive until the page is closed
}

// wrap adapts a JSON-in, JSON-out engine call to a JavaScript function that
// returns either the result string or an {error} object.
func wrap(call func(string) (string, error)) func(js.Value, []js.Value) any {
	return func(_ js.Value, args []js.Value) any {
		if len(args) < 1 {
			return map[string]any{"error": "no input provided"}
		}
		result, err := call(args[0].String())
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		return result
	}
}
