package process

// Notes:
// - Real kill behavior is covered by the PDF export integration tests; unit
//   tests only check that guard paths and unknown PIDs do not panic.

import "testing"

func TestKillProcessGroup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pid  int
	}{
		{name: "zero is ignored", pid: 0},
		{name: "negative is ignored", pid: -42},
		{name: "unknown pid", pid: 999999999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			KillProcessGroup(tt.pid)
		})
	}
}
