/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package rescue_test

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dirpx.dev/rescue"
)

var update = flag.Bool("update", false, "update golden files")

// TestExplain_Golden verifies Explain() output is stable and human-friendly.
// Update golden with: go test . -run Explain_Golden -update
func TestExplain_Golden(t *testing.T) {
	var b strings.Builder

	// Case 1: handled through a cause, with an unresolved name on the way
	exp1 := reinforcedGateClass.Explain(fmt.Errorf("open gate: %w", &Breach{Wall: "north"}))
	b.WriteString(exp1)
	b.WriteString("\n---\n")

	// Case 2: end of chain
	exp2 := gateClass.Explain(errors.New("boom"))
	b.WriteString(exp2)
	b.WriteString("\n---\n")

	// Case 3: cause cycle
	ex1 := &chainError{msg: "error 1"}
	ex2 := &chainError{msg: "error 2", cause: ex1}
	ex1.cause = ex2
	exp3 := gateClass.Explain(ex1)
	b.WriteString(exp3)
	b.WriteString("\n---\n")

	// Case 4: nil error
	exp4 := gateClass.Explain(nil)
	b.WriteString(exp4)
	b.WriteString("\n")

	got := b.String()

	goldenPath := filepath.Join("testdata", "explain.golden")
	if *update {
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			t.Fatalf("mkdir testdata: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(got), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenPath)
		return
	}

	wantBytes, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("read golden: %v (run with -update to create)", err)
	}
	want := string(wantBytes)

	// normalize trailing newlines to avoid EOF newline mismatches
	normalize := func(s string) string { return strings.TrimRight(s, "\r\n") }

	if normalize(want) != normalize(got) {
		t.Fatalf("Explain() output mismatch.\n--- want ---\n%s\n--- got ---\n%s", want, got)
	}
}

func TestExplain_RunsNoHandler(t *testing.T) {
	calls := 0
	c := rescue.NewClass[*Counter]("Counter")
	c.MustRescueFrom(rescue.On(rescue.Type[*Breach]()), rescue.Action(func(*Counter) { calls++ }))

	out := c.Explain(&Breach{Wall: "east"})
	if !strings.HasSuffix(out, "result=handled level=0") {
		t.Fatalf("unexpected explanation:\n%s", out)
	}
	if calls != 0 {
		t.Fatalf("Explain ran %d handlers", calls)
	}
}
