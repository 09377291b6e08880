package codewrap

import "testing"

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []Argument
		wantInputs   []string
		wantProduced []string
	}{
		{
			name: "inputs only",
			args: []Argument{
				{Name: "x", Kind: Input},
				{Name: "y", Kind: Input},
			},
			wantInputs: []string{"x", "y"},
		},
		{
			name: "outputs only",
			args: []Argument{
				{Name: "a", Kind: Output},
				{Name: "b", Kind: Output},
			},
			wantProduced: []string{"a", "b"},
		},
		{
			name: "interleaved kinds preserve relative order",
			args: []Argument{
				{Name: "x", Kind: Input},
				{Name: "s", Kind: InOut},
				{Name: "o", Kind: Output},
				{Name: "z", Kind: Input},
			},
			wantInputs:   []string{"x", "s", "z"},
			wantProduced: []string{"s", "o"},
		},
		{
			name: "inout lands in both subsets",
			args: []Argument{
				{Name: "s", Kind: InOut},
			},
			wantInputs:   []string{"s"},
			wantProduced: []string{"s"},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs, produced := SplitArgs(tt.args)
			checkNames(t, "caller inputs", inputs, tt.wantInputs)
			checkNames(t, "produced results", produced, tt.wantProduced)
		})
	}
}

func checkNames(t *testing.T, label string, got []Argument, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: got %d arguments, want %d", label, len(got), len(want))
	}
	for i, a := range got {
		if a.Name != want[i] {
			t.Errorf("%s[%d] = %s, want %s", label, i, a.Name, want[i])
		}
	}
}

// Every argument appears at least once, and InOut arguments exactly twice.
func TestSplitArgs_Exhaustive(t *testing.T) {
	args := []Argument{
		{Name: "a", Kind: Input},
		{Name: "b", Kind: InOut},
		{Name: "c", Kind: Output},
	}
	inputs, produced := SplitArgs(args)
	if got := len(inputs) + len(produced); got != 4 {
		t.Errorf("total classified arguments = %d, want 4", got)
	}
}
