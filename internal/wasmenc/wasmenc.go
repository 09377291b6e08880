// Package wasmenc emits minimal WebAssembly binaries without an external
// toolchain.
//
// The dummy backend uses it to write placeholder artifacts that exercise
// the full build-and-load pipeline: a module holding a literal string in a
// data segment, with a single export returning the string's (pointer,
// length) pair as two i32 results.
package wasmenc

// wasm binary section ids
const (
	secType     = 1
	secFunction = 3
	secMemory   = 5
	secExport   = 7
	secCode     = 10
	secData     = 11
)

const (
	opI32Const = 0x41
	opEnd      = 0x0b
)

// textOffset is where the literal lands in linear memory. The first bytes
// of page zero are left untouched so a zero pointer stays distinguishable.
const textOffset = 8

// pageSize is the wasm linear-memory page size.
const pageSize = 65536

// StringModule encodes a module exporting one zero-argument function named
// exportName that returns (ptr, len) of text in the module's own memory.
// The memory itself is exported as "memory". Requires multi-value support
// in the loading runtime.
func StringModule(exportName, text string) []byte {
	var b []byte
	b = append(b, 0x00, 0x61, 0x73, 0x6d) // \0asm
	b = append(b, 0x01, 0x00, 0x00, 0x00) // version 1

	// type: () -> (i32, i32)
	b = section(b, secType, vec(1, functype(nil, []byte{0x7f, 0x7f})))

	// function: one func of type 0
	b = section(b, secFunction, vec(1, []byte{0x00}))

	// memory: enough pages to hold the literal, no maximum
	pages := uint64(textOffset+len(text))/pageSize + 1
	b = section(b, secMemory, vec(1, append([]byte{0x00}, uleb128(pages)...)))

	// exports: the memory and the placeholder function
	exports := append(export("memory", 0x02, 0), export(exportName, 0x00, 0)...)
	b = section(b, secExport, vec(2, exports))

	// code: i32.const textOffset; i32.const len(text); end
	var body []byte
	body = append(body, 0x00) // no locals
	body = append(body, opI32Const)
	body = append(body, sleb128(textOffset)...)
	body = append(body, opI32Const)
	body = append(body, sleb128(int64(len(text)))...)
	body = append(body, opEnd)
	b = section(b, secCode, vec(1, append(uleb128(uint64(len(body))), body...)))

	// data: active segment at textOffset
	var data []byte
	data = append(data, 0x00) // memory index 0, active
	data = append(data, opI32Const)
	data = append(data, sleb128(textOffset)...)
	data = append(data, opEnd)
	data = append(data, uleb128(uint64(len(text)))...)
	data = append(data, text...)
	b = section(b, secData, vec(1, data))

	return b
}

// TextOffset returns the linear-memory offset of the literal inside a
// StringModule artifact.
func TextOffset() uint32 { return textOffset }

func section(b []byte, id byte, contents []byte) []byte {
	b = append(b, id)
	b = append(b, uleb128(uint64(len(contents)))...)
	return append(b, contents...)
}

// vec prefixes contents with an element count.
func vec(count uint64, contents []byte) []byte {
	return append(uleb128(count), contents...)
}

func functype(params, results []byte) []byte {
	out := []byte{0x60}
	out = append(out, vec(uint64(len(params)), params)...)
	out = append(out, vec(uint64(len(results)), results)...)
	return out
}

func export(name string, kind byte, index uint64) []byte {
	out := vec(uint64(len(name)), []byte(name))
	out = append(out, kind)
	return append(out, uleb128(index)...)
}

func uleb128(v uint64) []byte {
	var out []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		out = append(out, c)
		if v == 0 {
			return out
		}
	}
}

func sleb128(v int64) []byte {
	var out []byte
	for {
		c := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && c&0x40 == 0) || (v == -1 && c&0x40 != 0)
		if !done {
			c |= 0x80
		}
		out = append(out, c)
		if done {
			return out
		}
	}
}
