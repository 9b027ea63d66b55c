package asset

import (
	"bytes"
	"strings"
	"testing"
)

func TestDump(t *testing.T) {
	r := newTestRegistry(t)
	mustImport(t, r, "a", "a.png")
	mustCreate(t, r, "s0", "a", Cell(0, 0, 8, 8))
	mustCreate(t, r, "s1", "a", Cell(1, 0, 8, 8))

	var buf bytes.Buffer
	r.Dump(&buf)
	out := buf.String()
	for _, want := range []string{`"a.png"`, `"s0"`, `"s1"`, "ReferrerIndex: (int) 1", "Width: (int) 64"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump lacks %s:\n%s", want, out)
		}
	}
}
