// Package rchidrun runs scripts through language interpreters compiled to
// WebAssembly.
//
// # Overview
//
// Each language is backed by a single WASI module stored at
// ~/.rchidrun/plugins/<language>/runtime.wasm. Running a script resolves the
// module, installing it on first use, and executes it with the script path as
// its only argument:
//
//	rchidrun run python hello.py
//	rchidrun sdk-list
//
// # Library Usage
//
//	layout := sdk.New(root)
//	exec, _ := executor.New(layout)
//	defer exec.Close()
//
//	inst := installer.New(layout, registry.NewDefault())
//	l := launcher.New(layout, registry.NewDefault(), inst, exec, prompt.New())
//	err := l.Run(ctx, "python", "hello.py")
//
// See the [registry], [sdk], [installer], [executor], [launcher], [prompt] and
// [config] packages for details.
package rchidrun
