// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"testing"

	"github.com/cjr29/rasm/charset"
)

func assemble(t *testing.T, src string) *Result {
	t.Helper()
	res, err := Assemble(src, charset.C64)
	if err != nil {
		t.Fatalf("Assemble(%q): unexpected error: %v", src, err)
	}
	return res
}

func TestAssembleSimpleImmediate(t *testing.T) {
	res := assemble(t, "lda #$01\n")
	if res.LoadAddr != defaultLoadAddr {
		t.Fatalf("load addr = $%04x, want $%04x", res.LoadAddr, defaultLoadAddr)
	}
	want := []byte{0xa9, 0x01}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleOriginAndLoop(t *testing.T) {
	src := "* = $c000\nloop:\n  inc $d020\n  jmp loop\n"
	res := assemble(t, src)
	if res.LoadAddr != 0xc000 {
		t.Fatalf("load addr = $%04x, want $c000", res.LoadAddr)
	}
	want := []byte{
		0xee, 0x20, 0xd0, // inc $d020
		0x4c, 0x00, 0xc0, // jmp $c000
	}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleForwardBranch(t *testing.T) {
	src := "* = $c000\n  bne skip\n  nop\nskip:\n  rts\n"
	res := assemble(t, src)
	want := []byte{
		0xd0, 0x01, // bne skip (displacement 1)
		0xea,       // nop
		0x60,       // rts
	}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleByteAndWordWithLabel(t *testing.T) {
	src := "* = $c000\ntable:\n  .byte 1,2,3\n  .word table\n"
	res := assemble(t, src)
	want := []byte{0x01, 0x02, 0x03, 0x00, 0xc0}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleStringPETSCII(t *testing.T) {
	res := assemble(t, `.string "Hi!"`)
	want := []byte{0x48, 0x09, 0x21} // 'H' passes through, 'i'->0x09, '!' passes through
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleAddrString(t *testing.T) {
	res := assemble(t, ".addrstring 42")
	want := []byte("00042")
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = %q, want %q", res.Code, want)
	}
}

func TestAssembleCStringTerminator(t *testing.T) {
	res := assemble(t, `.cstring "ab"`)
	want := []byte{0x01, 0x02, 0x00}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleCBMStringHighBit(t *testing.T) {
	res := assemble(t, `.cbmstring "ab"`)
	want := []byte{0x01, 0x02 | 0x80}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleEmptyCBMString(t *testing.T) {
	res := assemble(t, `.cbmstring ""`)
	if len(res.Code) != 0 {
		t.Fatalf("code = % x, want empty", res.Code)
	}
}

func TestAssembleEmptySource(t *testing.T) {
	res := assemble(t, "")
	if res.LoadAddr != defaultLoadAddr || len(res.Code) != 0 {
		t.Fatalf("got load addr $%04x, code % x, want default addr and no code", res.LoadAddr, res.Code)
	}
}

func TestAssembleBranchToSelf(t *testing.T) {
	src := "* = $c000\nloop:\n  bne loop\n"
	res := assemble(t, src)
	want := []byte{0xd0, 0xfe} // displacement -2
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleBranchOutOfRangeFails(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("* = $c000\nbne far\n")
	for i := 0; i < 200; i++ {
		b.WriteString("  nop\n")
	}
	b.WriteString("far:\n")
	_, err := Assemble(b.String(), charset.C64)
	if err == nil {
		t.Fatal("expected a branch-range error, got nil")
	}
	asmErr, ok := err.(*Error)
	if !ok || asmErr.Kind != KindBranchRange {
		t.Fatalf("got error %v, want KindBranchRange", err)
	}
}

func TestAssembleUndefinedSymbolFails(t *testing.T) {
	_, err := Assemble("lda undefined_thing\n", charset.C64)
	if err == nil {
		t.Fatal("expected an undefined-symbol error, got nil")
	}
	asmErr, ok := err.(*Error)
	if !ok || asmErr.Kind != KindUndefinedSymbol {
		t.Fatalf("got error %v, want KindUndefinedSymbol", err)
	}
}

func TestAssembleIllegalModeFails(t *testing.T) {
	_, err := Assemble("inx #$01\n", charset.C64)
	if err == nil {
		t.Fatal("expected an illegal-mode error, got nil")
	}
	asmErr, ok := err.(*Error)
	if !ok || asmErr.Kind != KindIllegalMode {
		t.Fatalf("got error %v, want KindIllegalMode", err)
	}
}

func TestAssembleUnknownMnemonicFails(t *testing.T) {
	_, err := Assemble("zzz $01\n", charset.C64)
	if err == nil {
		t.Fatal("expected an unknown-mnemonic error, got nil")
	}
	asmErr, ok := err.(*Error)
	if !ok || asmErr.Kind != KindUnknownMnemonic {
		t.Fatalf("got error %v, want KindUnknownMnemonic", err)
	}
}

func TestAssembleZeropageVsAbsolute(t *testing.T) {
	res := assemble(t, "lda $ff\nlda $0100\n")
	want := []byte{
		0xa5, 0xff, // lda $ff (zeropage)
		0xad, 0x00, 0x01, // lda $0100 (absolute)
	}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleBlockScopedLabels(t *testing.T) {
	src := "" +
		"* = $c000\n" +
		".block\n" +
		"loop:\n" +
		"  bne loop\n" +
		".bend\n" +
		".block\n" +
		"loop:\n" +
		"  bne loop\n" +
		".bend\n"
	res := assemble(t, src)
	want := []byte{0xd0, 0xfe, 0xd0, 0xfe}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssembleCommentsIgnored(t *testing.T) {
	res := assemble(t, "lda #$01 ; load a one\n; a whole comment line\nnop\n")
	want := []byte{0xa9, 0x01, 0xea}
	if !bytes.Equal(res.Code, want) {
		t.Fatalf("code = % x, want % x", res.Code, want)
	}
}

func TestAssemblePRGHeader(t *testing.T) {
	res := assemble(t, "* = $c000\nnop\n")
	prg := res.PRG()
	want := []byte{0x00, 0xc0, 0xea}
	if !bytes.Equal(prg, want) {
		t.Fatalf("prg = % x, want % x", prg, want)
	}
}
