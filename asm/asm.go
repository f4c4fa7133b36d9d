// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"regexp"
	"strings"

	"github.com/cjr29/rasm/charset"
	"github.com/cjr29/rasm/mos6502"
)

// Pass identifies which of the three walks over the source is in progress.
type Pass int

const (
	// PassConstant evaluates IDENT = expr assignments (and * = expr) only.
	// Instructions and data pseudo-ops are skipped entirely: they neither
	// advance the program counter nor emit bytes.
	PassConstant Pass = iota
	// PassLabel walks the whole source, advancing the program counter
	// through every instruction and pseudo-op, and records each label
	// definition's resulting address. Unresolved symbols degrade to a
	// forward-reference placeholder instead of failing.
	PassLabel
	// PassMain repeats the walk of PassLabel, this time emitting the final
	// opcode and data bytes. Any symbol still unresolved here is fatal.
	PassMain
)

// defaultLoadAddr is the address assumed for the .prg header until the
// first "* = expr" assignment overrides it.
const defaultLoadAddr uint16 = 0x0801

var (
	reAssign = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*|\*)\s*=\s*(.+)$`)
	reLabel  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*):$`)
	rePseudo = regexp.MustCompile(`^\.(\w+)(?:\s+(.*))?$`)
	reInstr  = regexp.MustCompile(`^(\w{3})(?:\s+(.*))?$`)
)

// Result is the product of a successful assembly.
type Result struct {
	// LoadAddr is the address the finished image expects to be loaded at,
	// and the value written as the little-endian .prg header.
	LoadAddr uint16
	// Code is the assembled byte image, not including the header.
	Code []byte
	// Symbols is the constant/label table populated during assembly.
	Symbols *SymbolTable
}

// PRG renders Result as a complete Commodore .prg file: the two-byte
// little-endian load address followed by the code.
func (r *Result) PRG() []byte {
	out := make([]byte, 0, len(r.Code)+2)
	out = append(out, byte(r.LoadAddr), byte(r.LoadAddr>>8))
	return append(out, r.Code...)
}

// Assembler drives the three passes over a fixed set of source lines,
// sharing one SymbolTable across all of them.
type Assembler struct {
	lines   []string
	symbols *SymbolTable
	profile charset.Profile

	pass        Pass
	pc          uint16
	loadAddr    uint16
	loadAddrSet bool
	code        []byte
}

// Assemble assembles source (already split into newline-terminated text)
// under the given character-set profile and returns the finished image.
// It runs the three named passes in order, rewinding between each.
func Assemble(source string, profile charset.Profile) (*Result, error) {
	a := &Assembler{
		lines:   strings.Split(source, "\n"),
		symbols: NewSymbolTable(),
		profile: profile,
	}

	for _, pass := range []Pass{PassConstant, PassLabel, PassMain} {
		if err := a.runPass(pass); err != nil {
			return nil, err
		}
	}

	return &Result{LoadAddr: a.loadAddr, Code: a.code, Symbols: a.symbols}, nil
}

func (a *Assembler) runPass(pass Pass) error {
	a.pass = pass
	a.pc = defaultLoadAddr
	a.loadAddr = defaultLoadAddr
	a.loadAddrSet = false
	a.code = a.code[:0]
	a.symbols.ResetBlockScope()

	for i, raw := range a.lines {
		line := i + 1
		text := strings.TrimSpace(stripComment(raw))
		if text == "" {
			continue
		}
		if err := a.processLine(text, line); err != nil {
			return err
		}
	}
	return nil
}

// stripComment truncates s at the first ';' that falls outside a quoted
// string literal.
func stripComment(s string) string {
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case ';':
			return s[:i]
		}
	}
	return s
}

func (a *Assembler) processLine(text string, line int) error {
	switch {
	case reAssign.MatchString(text):
		m := reAssign.FindStringSubmatch(text)
		return a.processAssignment(m[1], m[2], line)

	case reLabel.MatchString(text):
		m := reLabel.FindStringSubmatch(text)
		return a.processLabel(m[1])

	case rePseudo.MatchString(text):
		m := rePseudo.FindStringSubmatch(text)
		return a.processPseudoOp(strings.ToLower(m[1]), m[2], line)

	case reInstr.MatchString(text):
		m := reInstr.FindStringSubmatch(text)
		return a.processInstruction(strings.ToLower(m[1]), m[2], line)

	default:
		return errSyntax(line, "unrecognized line %q", text)
	}
}

func (a *Assembler) processAssignment(name, exprText string, line int) error {
	v, err := a.resolveOne(exprText, line, 0)
	if err != nil {
		return err
	}

	if name == "*" {
		a.pc = v
		if !a.loadAddrSet {
			a.loadAddr = v
			a.loadAddrSet = true
		}
		return nil
	}

	if a.pass == PassConstant {
		a.symbols.SetConstant(name, v)
	}
	return nil
}

func (a *Assembler) processLabel(name string) error {
	if a.pass == PassLabel {
		a.symbols.SetLabel(name, a.pc)
	}
	return nil
}

func (a *Assembler) processPseudoOp(name, args string, line int) error {
	if a.pass == PassConstant {
		return nil
	}
	fn, ok := pseudoOps[name]
	if !ok {
		return errUnknownDirective(line, name)
	}
	return fn(a, args, line)
}

func (a *Assembler) processInstruction(mnemonic, operand string, line int) error {
	if a.pass == PassConstant {
		return nil
	}
	if !mos6502.Known(mnemonic) {
		return errUnknownMnemonic(line, mnemonic)
	}

	opcodePC := a.pc
	mode, operandBytes, err := classify(mnemonic, operand, a.symbols, opcodePC, a.pass, line)
	if err != nil {
		return err
	}

	inst, ok := mos6502.Lookup(mnemonic, mode)
	if !ok {
		return errIllegalMode(line, mnemonic)
	}

	a.pc += 1 + uint16(len(operandBytes))
	if a.pass == PassMain {
		a.code = append(a.code, inst.Opcode)
		a.code = append(a.code, operandBytes...)
	}
	return nil
}
