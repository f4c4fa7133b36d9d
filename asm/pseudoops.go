// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"

	"github.com/cjr29/rasm/charset"
)

// pseudoOpFunc implements one ".directive" pseudo-op. It must advance
// a.pc by the directive's byte length regardless of pass, and append the
// final bytes to a.code only when a.pass == PassMain.
type pseudoOpFunc func(a *Assembler, args string, line int) error

var pseudoOps = map[string]pseudoOpFunc{
	"byte":       pseudoByte,
	"word":       pseudoWord,
	"string":     pseudoString,
	"cstring":    pseudoCString,
	"cbmstring":  pseudoCBMString,
	"addrstring": pseudoAddrString,
	"align":      pseudoAlign,
	"block":      pseudoBlock,
	"bend":       pseudoBend,
}

func pseudoByte(a *Assembler, args string, line int) error {
	values, err := a.resolveList(args, line, forwardRefPlaceholder8)
	if err != nil {
		return err
	}
	bytes := make([]byte, len(values))
	for i, v := range values {
		bytes[i] = byte(v)
	}
	a.pc += uint16(len(bytes))
	if a.pass == PassMain {
		a.code = append(a.code, bytes...)
	}
	return nil
}

func pseudoWord(a *Assembler, args string, line int) error {
	values, err := a.resolveList(args, line, forwardRefPlaceholder16)
	if err != nil {
		return err
	}
	bytes := make([]byte, 0, len(values)*2)
	for _, v := range values {
		bytes = append(bytes, byte(v), byte(v>>8))
	}
	a.pc += uint16(len(bytes))
	if a.pass == PassMain {
		a.code = append(a.code, bytes...)
	}
	return nil
}

func pseudoString(a *Assembler, args string, line int) error {
	text, err := parseQuotedString(args, line)
	if err != nil {
		return err
	}
	encoded := charset.Encode([]byte(text), a.profile)
	a.pc += uint16(len(encoded))
	if a.pass == PassMain {
		a.code = append(a.code, encoded...)
	}
	return nil
}

func pseudoCString(a *Assembler, args string, line int) error {
	text, err := parseQuotedString(args, line)
	if err != nil {
		return err
	}
	encoded := charset.Encode([]byte(text), a.profile)
	a.pc += uint16(len(encoded)) + 1
	if a.pass == PassMain {
		a.code = append(a.code, encoded...)
		a.code = append(a.code, 0x00)
	}
	return nil
}

func pseudoCBMString(a *Assembler, args string, line int) error {
	text, err := parseQuotedString(args, line)
	if err != nil {
		return err
	}
	encoded := charset.Encode([]byte(text), a.profile)
	a.pc += uint16(len(encoded))
	if a.pass == PassMain {
		if len(encoded) > 0 {
			encoded[len(encoded)-1] |= 0x80
		}
		a.code = append(a.code, encoded...)
	}
	return nil
}

func pseudoAddrString(a *Assembler, args string, line int) error {
	v, err := a.resolveOne(args, line, forwardRefPlaceholder16)
	if err != nil {
		return err
	}
	a.pc += 5
	if a.pass == PassMain {
		a.code = append(a.code, []byte(fmt.Sprintf("%05d", v))...)
	}
	return nil
}

// pseudoAlign pads the program counter up to the next multiple of a
// power-of-two alignment. Not part of the required pseudo-op set, but
// harmless and additive: see SPEC_FULL.md.
func pseudoAlign(a *Assembler, args string, line int) error {
	align, err := a.resolveOne(args, line, 1)
	if err != nil {
		return err
	}
	if align == 0 || (align&(align-1)) != 0 {
		return errSyntax(line, "alignment must be a power of two, got %d", align)
	}
	n := uint16(align)
	pad := n*((a.pc+n-1)/n) - a.pc
	a.pc += pad
	if a.pass == PassMain {
		a.code = append(a.code, make([]byte, pad)...)
	}
	return nil
}

func pseudoBlock(a *Assembler, args string, line int) error {
	a.symbols.EnterBlock()
	return nil
}

func pseudoBend(a *Assembler, args string, line int) error {
	a.symbols.ExitBlock()
	return nil
}

// resolveOne resolves a single expression, degrading to placeholder when
// unresolved outside of pass Main.
func (a *Assembler) resolveOne(expr string, line int, placeholder uint16) (uint16, error) {
	v, ok := evalExpr(expr, a.symbols)
	if ok {
		return v, nil
	}
	if a.pass == PassMain {
		return 0, errUndefinedSymbol(line, strings.TrimSpace(expr))
	}
	return placeholder, nil
}

// resolveList resolves a comma-separated list of expressions.
func (a *Assembler) resolveList(args string, line int, placeholder uint16) ([]uint16, error) {
	parts := strings.Split(args, ",")
	values := make([]uint16, len(parts))
	for i, p := range parts {
		v, err := a.resolveOne(p, line, placeholder)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// parseQuotedString extracts the text between a pair of matching quote
// characters (the opening character, whichever of " or ' it is).
func parseQuotedString(args string, line int) (string, error) {
	args = strings.TrimSpace(args)
	if len(args) < 2 {
		return "", errSyntax(line, "expected a quoted string")
	}
	quote := args[0]
	if quote != '"' && quote != '\'' {
		return "", errSyntax(line, "expected a quoted string")
	}
	if args[len(args)-1] != quote {
		return "", errSyntax(line, "unterminated string literal")
	}
	return args[1 : len(args)-1], nil
}
