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

package rescue

import (
	"fmt"
	"strings"
)

// Explain produces a textual trace of how c would dispatch err, without
// running any handler.
//
// Example output:
//
//	class="ReinforcedGate" error="open gate: breach at north wall"
//	level=0 type=*fmt.wrapError
//	  entry=2 key="*gate.Breach" no_match
//	  entry=1 key="Flood" unresolved
//	  entry=0 key="*gate.Breach" no_match
//	level=1 type=*gate.Breach
//	  entry=2 key="*gate.Breach" match handlers=[SealDoorsTwice]
//	result=handled level=1
//
// Entries are listed in scan order (last registered first). This is a
// diagnostic aid and not meant for stable machine parsing.
func (c *Class) Explain(err error) string {
	var b strings.Builder
	if err == nil {
		_, _ = fmt.Fprintf(&b, "class=%q error=<nil>\n", c.name)
		_, _ = fmt.Fprint(&b, "result=unhandled reason=nil_error")
		return b.String()
	}
	_, _ = fmt.Fprintf(&b, "class=%q error=%q\n", c.name, err.Error())

	entries := c.Registry().entries
	seen := newVisited()
	trace := func(i int, e Entry, o matchOutcome) {
		switch o {
		case outcomeMatch:
			_, _ = fmt.Fprintf(&b, "  entry=%d key=%q match handlers=[%s]\n", i, e.Key, handlerNames(e.Handlers))
		case outcomeUnresolved:
			_, _ = fmt.Fprintf(&b, "  entry=%d key=%q unresolved\n", i, e.Key)
		default:
			_, _ = fmt.Fprintf(&b, "  entry=%d key=%q no_match\n", i, e.Key)
		}
	}
	for depth := 0; depth < maxChainDepth; depth++ {
		seen.add(err)
		_, _ = fmt.Fprintf(&b, "level=%d type=%T\n", depth, err)
		if _, ok := c.findMatch(entries, err, trace); ok {
			_, _ = fmt.Fprintf(&b, "result=handled level=%d", depth)
			return b.String()
		}
		cause := Cause(err)
		if cause == nil {
			break
		}
		if seen.has(cause) {
			_, _ = fmt.Fprintf(&b, "result=unhandled reason=cycle level=%d", depth)
			return b.String()
		}
		err = cause
	}
	_, _ = fmt.Fprint(&b, "result=unhandled reason=end_of_chain")
	return b.String()
}

func handlerNames(hs []Handler) string {
	names := make([]string, len(hs))
	for i, h := range hs {
		names[i] = h.String()
	}
	return strings.Join(names, " ")
}
