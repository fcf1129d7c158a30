// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing designs.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/RPG-coder-intc/rohd"
)

// CompareBlocks drives two combinational designs with identical stimulus
// and requires their outputs to match bit for bit. Both designs must be
// registered with sim and read the same input signals. The stimulus runs
// all zeros, all ones, then a batch of random vectors sized by the total
// input width.
//
func CompareBlocks(t *testing.T, sim *rohd.Simulator, inputs []*rohd.Signal, out1, out2 *rohd.Signal) {
	t.Helper()

	check := func() {
		t.Helper()
		if err := sim.Settle(); err != nil {
			t.Fatal(err)
		}
		v1, v2 := out1.Value(), out2.Value()
		if !v1.Equal(v2) {
			var b strings.Builder
			for _, in := range inputs {
				if b.Len() > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "%s=%s", in.Name(), in.Value())
			}
			t.Fatalf("\nwith %s\n%s = %s\n%s = %s", b.String(), out1.Name(), v1, out2.Name(), v2)
		}
	}

	for _, in := range inputs {
		in.Put(0)
	}
	check()

	for _, in := range inputs {
		in.PutBit(rohd.Hi)
	}
	check()

	bits := 0
	for _, in := range inputs {
		bits += in.Width()
	}
	if bits > 12 {
		bits = 12
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1<<uint(bits); i++ {
		for _, in := range inputs {
			in.PutValue(rohd.FromUint64(rng.Uint64(), in.Width()))
		}
		check()
	}
}
