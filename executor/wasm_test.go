package executor_test

// Tiny hand-assembled WASM modules used as runtime fixtures.

const (
	opUnreachable = 0x00
	opLoop        = 0x03
	opIf          = 0x04
	opEnd         = 0x0b
	opBr          = 0x0c
	opCall        = 0x10
	opDrop        = 0x1a
	opI32Load     = 0x28
	opI32Const    = 0x41
	opI32Ne       = 0x47

	typeI32   = 0x7f
	blockVoid = 0x40
)

func leb(n int) []byte {
	var out []byte
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n == 0 {
			return append(out, b)
		}
		out = append(out, b|0x80)
	}
}

func vec(items ...[]byte) []byte {
	out := leb(len(items))
	for _, item := range items {
		out = append(out, item...)
	}
	return out
}

func bytesVec(b []byte) []byte {
	return append(leb(len(b)), b...)
}

func name(s string) []byte {
	return bytesVec([]byte(s))
}

func section(id byte, content []byte) []byte {
	return append(append([]byte{id}, leb(len(content))...), content...)
}

func funcType(params, results []byte) []byte {
	return append(append([]byte{0x60}, bytesVec(params)...), bytesVec(results)...)
}

func wasiImport(field string, typeIdx int) []byte {
	out := append(name("wasi_snapshot_preview1"), name(field)...)
	return append(append(out, 0x00), leb(typeIdx)...)
}

func funcExport(s string, idx int) []byte {
	return append(append(name(s), 0x00), leb(idx)...)
}

func memoryExport() []byte {
	return append(name("memory"), 0x02, 0x00)
}

// body wraps instructions in a code entry with no locals.
func body(instrs ...byte) []byte {
	b := append([]byte{0x00}, instrs...)
	b = append(b, opEnd)
	return bytesVec(b)
}

type module struct {
	types   [][]byte
	imports [][]byte
	funcs   []int
	memory  int // minimum pages; 0 means no memory
	exports [][]byte
	codes   [][]byte
	data    [][]byte
}

func (m module) bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	if len(m.types) > 0 {
		out = append(out, section(1, vec(m.types...))...)
	}
	if len(m.imports) > 0 {
		out = append(out, section(2, vec(m.imports...))...)
	}
	if len(m.funcs) > 0 {
		var idx [][]byte
		for _, f := range m.funcs {
			idx = append(idx, leb(f))
		}
		out = append(out, section(3, vec(idx...))...)
	}
	if m.memory > 0 {
		out = append(out, section(5, vec(append([]byte{0x00}, leb(m.memory)...)))...)
	}
	if len(m.exports) > 0 {
		out = append(out, section(7, vec(m.exports...))...)
	}
	if len(m.codes) > 0 {
		out = append(out, section(10, vec(m.codes...))...)
	}
	if len(m.data) > 0 {
		out = append(out, section(11, vec(m.data...))...)
	}
	return out
}

var voidType = funcType(nil, nil)

// emptyStartModule exports a _start that returns immediately.
func emptyStartModule() []byte {
	return module{
		types:   [][]byte{voidType},
		funcs:   []int{0},
		exports: [][]byte{funcExport("_start", 0)},
		codes:   [][]byte{body()},
	}.bytes()
}

// noStartModule exports "main" instead of _start.
func noStartModule() []byte {
	return module{
		types:   [][]byte{voidType},
		funcs:   []int{0},
		exports: [][]byte{funcExport("main", 0)},
		codes:   [][]byte{body()},
	}.bytes()
}

// wrongSignatureModule exports a _start taking an i32.
func wrongSignatureModule() []byte {
	return module{
		types:   [][]byte{funcType([]byte{typeI32}, nil)},
		funcs:   []int{0},
		exports: [][]byte{funcExport("_start", 0)},
		codes:   [][]byte{body()},
	}.bytes()
}

// trapModule's _start executes unreachable.
func trapModule() []byte {
	return module{
		types:   [][]byte{voidType},
		funcs:   []int{0},
		exports: [][]byte{funcExport("_start", 0)},
		codes:   [][]byte{body(opUnreachable)},
	}.bytes()
}

// loopModule's _start never returns.
func loopModule() []byte {
	return module{
		types:   [][]byte{voidType},
		funcs:   []int{0},
		exports: [][]byte{funcExport("_start", 0)},
		codes:   [][]byte{body(opLoop, blockVoid, opBr, 0x00, opEnd)},
	}.bytes()
}

// unknownImportModule imports a function no host provides.
func unknownImportModule() []byte {
	imp := append(name("env"), name("missing")...)
	imp = append(imp, 0x00, 0x00)
	return module{
		types:   [][]byte{voidType},
		imports: [][]byte{imp},
		funcs:   []int{0},
		exports: [][]byte{funcExport("_start", 1)},
		codes:   [][]byte{body()},
	}.bytes()
}

// bigMemoryModule declares a memory of the given minimum pages.
func bigMemoryModule(pages int) []byte {
	return module{
		types:   [][]byte{voidType},
		funcs:   []int{0},
		memory:  pages,
		exports: [][]byte{funcExport("_start", 0)},
		codes:   [][]byte{body()},
	}.bytes()
}

// argsModule traps unless WASI reports exactly one argument whose
// NUL-terminated size is bufSize. bufSize must be below 64.
func argsModule(bufSize byte) []byte {
	code := []byte{
		opI32Const, 0x00, opI32Const, 0x04, opCall, 0x00, opDrop,
		opI32Const, 0x00, opI32Load, 0x02, 0x00, opI32Const, 0x01, opI32Ne,
		opIf, blockVoid, opUnreachable, opEnd,
		opI32Const, 0x00, opI32Load, 0x02, 0x04, opI32Const, bufSize, opI32Ne,
		opIf, blockVoid, opUnreachable, opEnd,
	}
	return module{
		types:   [][]byte{funcType([]byte{typeI32, typeI32}, []byte{typeI32}), voidType},
		imports: [][]byte{wasiImport("args_sizes_get", 0)},
		funcs:   []int{1},
		memory:  1,
		exports: [][]byte{funcExport("_start", 1), memoryExport()},
		codes:   [][]byte{body(code...)},
	}.bytes()
}

// helloModule writes "hi\n" to stdout with fd_write.
func helloModule() []byte {
	// iovec {buf: 16, len: 3} at 0, text at 16.
	mem := []byte{16, 0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 'h', 'i', '\n'}
	segment := append([]byte{0x00, opI32Const, 0x00, opEnd}, bytesVec(mem)...)
	code := []byte{
		opI32Const, 0x01, opI32Const, 0x00, opI32Const, 0x01, opI32Const, 0x08,
		opCall, 0x00, opDrop,
	}
	return module{
		types:   [][]byte{funcType([]byte{typeI32, typeI32, typeI32, typeI32}, []byte{typeI32}), voidType},
		imports: [][]byte{wasiImport("fd_write", 0)},
		funcs:   []int{1},
		memory:  1,
		exports: [][]byte{funcExport("_start", 1), memoryExport()},
		codes:   [][]byte{body(code...)},
		data:    [][]byte{segment},
	}.bytes()
}

// exitModule calls proc_exit(code). code must be below 64.
func exitModule(code byte) []byte {
	return module{
		types:   [][]byte{funcType([]byte{typeI32}, nil), voidType},
		imports: [][]byte{wasiImport("proc_exit", 0)},
		funcs:   []int{1},
		memory:  1,
		exports: [][]byte{funcExport("_start", 1), memoryExport()},
		codes:   [][]byte{body(opI32Const, code, opCall, 0x00)},
	}.bytes()
}
