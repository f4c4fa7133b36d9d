// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cjr29/rasm/charset"
)

func TestConsoleAccumulatesAndAssembles(t *testing.T) {
	in := strings.NewReader("* = $c000\nnop\nassemble\nquit\n")
	var out bytes.Buffer
	New(in, &out, charset.C64).Run()

	got := out.String()
	if !strings.Contains(got, "assembled 1 bytes") {
		t.Fatalf("output = %q, want it to report 1 assembled byte", got)
	}
}

func TestConsoleResetClearsBuffer(t *testing.T) {
	in := strings.NewReader("nop\nreset\nlist\nquit\n")
	var out bytes.Buffer
	New(in, &out, charset.C64).Run()

	got := out.String()
	if strings.Contains(got, "nop") {
		t.Fatalf("output = %q, want buffer cleared before list", got)
	}
}

func TestConsoleSymbolsBeforeAssembleIsGraceful(t *testing.T) {
	in := strings.NewReader("symbols\nquit\n")
	var out bytes.Buffer
	New(in, &out, charset.C64).Run()

	if !strings.Contains(out.String(), "nothing assembled yet") {
		t.Fatalf("output = %q, want graceful message", out.String())
	}
}
