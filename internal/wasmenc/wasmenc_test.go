package wasmenc

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"
)

func TestStringModule_Header(t *testing.T) {
	mod := StringModule("autofunc", "x + y")

	if !bytes.HasPrefix(mod, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}) {
		t.Fatalf("missing wasm magic/version prefix: % x", mod[:8])
	}
	if !bytes.Contains(mod, []byte("autofunc")) {
		t.Error("export name not present in binary")
	}
	if !bytes.Contains(mod, []byte("x + y")) {
		t.Error("literal text not present in data segment")
	}
}

func TestStringModule_Executes(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"short", "x**2 - 2*x*y + y**2"},
		{"empty", ""},
		// long enough to need a multi-byte leb128 length
		{"long", string(bytes.Repeat([]byte("a*b + "), 40))},
		// longer than one memory page; the data segment must still fit
		{"page spanning", string(bytes.Repeat([]byte("x0 + x1 + x2 + "), 8192))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			rt := wazero.NewRuntime(ctx)
			defer rt.Close(ctx)

			inst, err := rt.Instantiate(ctx, StringModule("placeholder", tt.text))
			if err != nil {
				t.Fatalf("instantiate: %v", err)
			}

			results, err := inst.ExportedFunction("placeholder").Call(ctx)
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if len(results) != 2 {
				t.Fatalf("got %d results, want 2", len(results))
			}

			ptr, length := uint32(results[0]), uint32(results[1])
			if ptr != TextOffset() {
				t.Errorf("ptr = %d, want %d", ptr, TextOffset())
			}
			got, ok := inst.Memory().Read(ptr, length)
			if !ok {
				t.Fatalf("memory read out of bounds: ptr=%d len=%d", ptr, length)
			}
			if string(got) != tt.text {
				t.Errorf("read %q, want %q", got, tt.text)
			}
		})
	}
}
