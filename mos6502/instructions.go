// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mos6502

import (
	"strings"
	"sync"
)

// Instruction describes one legal (mnemonic, addressing mode) encoding.
type Instruction struct {
	Mnemonic string // lowercase mnemonic, e.g. "lda"
	Mode     Mode
	Opcode   byte
	Length   byte // total instruction length in bytes, including the opcode
}

// Table is an immutable map from mnemonic to the set of addressing modes
// that mnemonic supports.
type Table map[string]map[Mode]Instruction

var buildTable = sync.OnceValue(func() Table {
	t := make(Table, len(opcodeRows))
	for _, row := range opcodeRows {
		variants, ok := t[row.mnemonic]
		if !ok {
			variants = make(map[Mode]Instruction)
			t[row.mnemonic] = variants
		}
		variants[row.mode] = Instruction{
			Mnemonic: row.mnemonic,
			Mode:     row.mode,
			Opcode:   row.opcode,
			Length:   byte(1 + row.mode.OperandBytes()),
		}
	}
	return t
})

// Lookup returns the instruction encoding for mnemonic in the given
// addressing mode, or ok == false if that mnemonic does not exist or does
// not support that mode.
func Lookup(mnemonic string, mode Mode) (inst Instruction, ok bool) {
	variants, found := buildTable()[strings.ToLower(mnemonic)]
	if !found {
		return Instruction{}, false
	}
	inst, ok = variants[mode]
	return inst, ok
}

// Variants returns every addressing mode supported by mnemonic, or
// ok == false if the mnemonic is not part of the instruction set.
func Variants(mnemonic string) (variants map[Mode]Instruction, ok bool) {
	variants, ok = buildTable()[strings.ToLower(mnemonic)]
	return variants, ok
}

// Known reports whether mnemonic names a documented 6502 instruction.
func Known(mnemonic string) bool {
	_, ok := buildTable()[strings.ToLower(mnemonic)]
	return ok
}

// SupportsMode reports whether mnemonic can be encoded using mode.
func SupportsMode(mnemonic string, mode Mode) bool {
	variants, ok := buildTable()[strings.ToLower(mnemonic)]
	if !ok {
		return false
	}
	_, ok = variants[mode]
	return ok
}

type opcodeRow struct {
	mnemonic string
	mode     Mode
	opcode   byte
}

// opcodeRows enumerates every legal (mnemonic, mode) pair in the
// documented NMOS 6502 instruction set: 56 mnemonics, no undocumented
// opcodes, no 65C02 extensions (bra, phx, phy, plx, ply, stz, trb, tsb,
// and the (zp) indirect mode are all 65C02-only and out of scope).
var opcodeRows = []opcodeRow{
	{"adc", Immediate, 0x69}, {"adc", Zeropage, 0x65}, {"adc", ZeropageX, 0x75},
	{"adc", Absolute, 0x6d}, {"adc", AbsoluteX, 0x7d}, {"adc", AbsoluteY, 0x79},
	{"adc", IndirectX, 0x61}, {"adc", IndirectY, 0x71},

	{"and", Immediate, 0x29}, {"and", Zeropage, 0x25}, {"and", ZeropageX, 0x35},
	{"and", Absolute, 0x2d}, {"and", AbsoluteX, 0x3d}, {"and", AbsoluteY, 0x39},
	{"and", IndirectX, 0x21}, {"and", IndirectY, 0x31},

	{"asl", Implied, 0x0a}, {"asl", Zeropage, 0x06}, {"asl", ZeropageX, 0x16},
	{"asl", Absolute, 0x0e}, {"asl", AbsoluteX, 0x1e},

	{"bcc", Relative, 0x90},
	{"bcs", Relative, 0xb0},
	{"beq", Relative, 0xf0},

	{"bit", Zeropage, 0x24}, {"bit", Absolute, 0x2c},

	{"bmi", Relative, 0x30},
	{"bne", Relative, 0xd0},
	{"bpl", Relative, 0x10},

	{"brk", Implied, 0x00},

	{"bvc", Relative, 0x50},
	{"bvs", Relative, 0x70},

	{"clc", Implied, 0x18},
	{"cld", Implied, 0xd8},
	{"cli", Implied, 0x58},
	{"clv", Implied, 0xb8},

	{"cmp", Immediate, 0xc9}, {"cmp", Zeropage, 0xc5}, {"cmp", ZeropageX, 0xd5},
	{"cmp", Absolute, 0xcd}, {"cmp", AbsoluteX, 0xdd}, {"cmp", AbsoluteY, 0xd9},
	{"cmp", IndirectX, 0xc1}, {"cmp", IndirectY, 0xd1},

	{"cpx", Immediate, 0xe0}, {"cpx", Zeropage, 0xe4}, {"cpx", Absolute, 0xec},
	{"cpy", Immediate, 0xc0}, {"cpy", Zeropage, 0xc4}, {"cpy", Absolute, 0xcc},

	{"dec", Zeropage, 0xc6}, {"dec", ZeropageX, 0xd6}, {"dec", Absolute, 0xce}, {"dec", AbsoluteX, 0xde},

	{"dex", Implied, 0xca},
	{"dey", Implied, 0x88},

	{"eor", Immediate, 0x49}, {"eor", Zeropage, 0x45}, {"eor", ZeropageX, 0x55},
	{"eor", Absolute, 0x4d}, {"eor", AbsoluteX, 0x5d}, {"eor", AbsoluteY, 0x59},
	{"eor", IndirectX, 0x41}, {"eor", IndirectY, 0x51},

	{"inc", Zeropage, 0xe6}, {"inc", ZeropageX, 0xf6}, {"inc", Absolute, 0xee}, {"inc", AbsoluteX, 0xfe},

	{"inx", Implied, 0xe8},
	{"iny", Implied, 0xc8},

	{"jmp", Absolute, 0x4c}, {"jmp", Indirect, 0x6c},
	{"jsr", Absolute, 0x20},

	{"lda", Immediate, 0xa9}, {"lda", Zeropage, 0xa5}, {"lda", ZeropageX, 0xb5},
	{"lda", Absolute, 0xad}, {"lda", AbsoluteX, 0xbd}, {"lda", AbsoluteY, 0xb9},
	{"lda", IndirectX, 0xa1}, {"lda", IndirectY, 0xb1},

	{"ldx", Immediate, 0xa2}, {"ldx", Zeropage, 0xa6}, {"ldx", ZeropageY, 0xb6},
	{"ldx", Absolute, 0xae}, {"ldx", AbsoluteY, 0xbe},

	{"ldy", Immediate, 0xa0}, {"ldy", Zeropage, 0xa4}, {"ldy", ZeropageX, 0xb4},
	{"ldy", Absolute, 0xac}, {"ldy", AbsoluteX, 0xbc},

	{"lsr", Implied, 0x4a}, {"lsr", Zeropage, 0x46}, {"lsr", ZeropageX, 0x56},
	{"lsr", Absolute, 0x4e}, {"lsr", AbsoluteX, 0x5e},

	{"nop", Implied, 0xea},

	{"ora", Immediate, 0x09}, {"ora", Zeropage, 0x05}, {"ora", ZeropageX, 0x15},
	{"ora", Absolute, 0x0d}, {"ora", AbsoluteX, 0x1d}, {"ora", AbsoluteY, 0x19},
	{"ora", IndirectX, 0x01}, {"ora", IndirectY, 0x11},

	{"pha", Implied, 0x48},
	{"php", Implied, 0x08},
	{"pla", Implied, 0x68},
	{"plp", Implied, 0x28},

	{"rol", Implied, 0x2a}, {"rol", Zeropage, 0x26}, {"rol", ZeropageX, 0x36},
	{"rol", Absolute, 0x2e}, {"rol", AbsoluteX, 0x3e},

	{"ror", Implied, 0x6a}, {"ror", Zeropage, 0x66}, {"ror", ZeropageX, 0x76},
	{"ror", Absolute, 0x6e}, {"ror", AbsoluteX, 0x7e},

	{"rti", Implied, 0x40},
	{"rts", Implied, 0x60},

	{"sbc", Immediate, 0xe9}, {"sbc", Zeropage, 0xe5}, {"sbc", ZeropageX, 0xf5},
	{"sbc", Absolute, 0xed}, {"sbc", AbsoluteX, 0xfd}, {"sbc", AbsoluteY, 0xf9},
	{"sbc", IndirectX, 0xe1}, {"sbc", IndirectY, 0xf1},

	{"sec", Implied, 0x38},
	{"sed", Implied, 0xf8},
	{"sei", Implied, 0x78},

	{"sta", Zeropage, 0x85}, {"sta", ZeropageX, 0x95}, {"sta", Absolute, 0x8d},
	{"sta", AbsoluteX, 0x9d}, {"sta", AbsoluteY, 0x99}, {"sta", IndirectX, 0x81}, {"sta", IndirectY, 0x91},

	{"stx", Zeropage, 0x86}, {"stx", ZeropageY, 0x96}, {"stx", Absolute, 0x8e},
	{"sty", Zeropage, 0x84}, {"sty", ZeropageX, 0x94}, {"sty", Absolute, 0x8c},

	{"tax", Implied, 0xaa},
	{"tay", Implied, 0xa8},
	{"tsx", Implied, 0xba},
	{"txa", Implied, 0x8a},
	{"txs", Implied, 0x9a},
	{"tya", Implied, 0x98},
}
