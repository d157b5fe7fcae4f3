// Package executor runs language runtimes compiled to WebAssembly.
//
// # Overview
//
// A runtime is a WASI command module (for example a Python interpreter built
// for wasm32-wasi). The executor loads the module from the SDK layout, gives
// it the host's standard streams and a single argument, the script path, and
// calls its _start export. The guest reads and interprets the script itself.
//
// Every run gets a fresh wazero runtime, so no guest state survives between
// runs. Only compiled code may be shared, through the optional on-disk
// compilation cache.
//
// # Basic Usage
//
//	layout, _ := sdk.Default()
//	exec, err := executor.New(layout, executor.WithDiskCache())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer exec.Close()
//
//	if err := exec.Run(ctx, "python", "hello.py"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// Failures wrap one of [ErrModuleNotFound], [ErrModuleLoad],
// [ErrEntryPointMissing] or [ErrExecutionTrap]. A guest that exits with a
// non-zero status yields ErrExecutionTrap wrapping a [sys.ExitError].
//
// [sys.ExitError]: https://pkg.go.dev/github.com/tetratelabs/wazero/sys#ExitError
package executor
