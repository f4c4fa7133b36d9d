// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"strings"

	"github.com/cjr29/rasm/mos6502"
)

// forwardRefPlaceholder16 and forwardRefPlaceholder8 are the values
// substituted for an operand that fails to resolve during pass Label.
// Using the widest possible value for each slot guarantees the classifier
// picks the same (and therefore same-length) addressing mode it will pick
// once the symbol is known, in pass Main -- the forward-reference policy
// that keeps pass-length stable across passes.
const (
	forwardRefPlaceholder16 = 0xffff
	forwardRefPlaceholder8  = 0xff
)

// classify selects an addressing mode for mnemonic/operand, resolves the
// operand expression against view, and returns the opcode's operand bytes
// (not including the opcode byte itself). pc is the address at which the
// opcode byte will be placed, needed for Relative displacement arithmetic.
// During pass Label an unresolved symbol degrades to a placeholder value
// instead of failing; during pass Main it is fatal.
func classify(mnemonic, operand string, view SymbolView, pc uint16, pass Pass, line int) (mos6502.Mode, []byte, error) {
	op := strings.TrimSpace(operand)

	resolve := func(expr string, placeholder uint16) (uint16, error) {
		v, ok := evalExpr(expr, view)
		if ok {
			return v, nil
		}
		if pass == PassMain {
			return 0, errUndefinedSymbol(line, strings.TrimSpace(expr))
		}
		return placeholder, nil
	}

	var mode mos6502.Mode
	var bytes []byte

	switch {
	case op == "" || op == "a" || op == "A":
		mode = mos6502.Implied

	case strings.HasPrefix(op, "#"):
		v, err := resolve(op[1:], forwardRefPlaceholder8)
		if err != nil {
			return 0, nil, err
		}
		mode = mos6502.Immediate
		bytes = []byte{byte(v)}

	case strings.HasPrefix(op, "(") && endsWithFold(op, ",X)"):
		inner := op[1 : len(op)-3]
		v, err := resolve(inner, forwardRefPlaceholder8)
		if err != nil {
			return 0, nil, err
		}
		mode = mos6502.IndirectX
		bytes = []byte{byte(v)}

	case strings.HasPrefix(op, "(") && endsWithFold(op, "),Y"):
		inner := op[1 : len(op)-3]
		v, err := resolve(inner, forwardRefPlaceholder8)
		if err != nil {
			return 0, nil, err
		}
		mode = mos6502.IndirectY
		bytes = []byte{byte(v)}

	case strings.HasPrefix(op, "(") && strings.HasSuffix(op, ")"):
		inner := op[1 : len(op)-1]
		v, err := resolve(inner, forwardRefPlaceholder16)
		if err != nil {
			return 0, nil, err
		}
		mode = mos6502.Indirect
		bytes = []byte{byte(v), byte(v >> 8)}

	case endsWithFold(op, ",X"):
		inner := op[:len(op)-2]
		v, err := resolve(inner, forwardRefPlaceholder16)
		if err != nil {
			return 0, nil, err
		}
		if v <= 0xff {
			mode, bytes = mos6502.ZeropageX, []byte{byte(v)}
		} else {
			mode, bytes = mos6502.AbsoluteX, []byte{byte(v), byte(v >> 8)}
		}

	case endsWithFold(op, ",Y"):
		inner := op[:len(op)-2]
		v, err := resolve(inner, forwardRefPlaceholder16)
		if err != nil {
			return 0, nil, err
		}
		if v <= 0xff {
			mode, bytes = mos6502.ZeropageY, []byte{byte(v)}
		} else {
			mode, bytes = mos6502.AbsoluteY, []byte{byte(v), byte(v >> 8)}
		}

	case mos6502.SupportsMode(mnemonic, mos6502.Relative):
		target, err := resolve(op, forwardRefPlaceholder16)
		if err != nil {
			return 0, nil, err
		}
		diff := int(target) - int(pc) - 2
		if pass == PassMain && (diff < -128 || diff > 127) {
			return 0, nil, errBranchRange(line, diff)
		}
		mode = mos6502.Relative
		bytes = []byte{byte(diff)}

	default:
		v, err := resolve(op, forwardRefPlaceholder16)
		if err != nil {
			return 0, nil, err
		}
		if v < 0x100 {
			mode, bytes = mos6502.Zeropage, []byte{byte(v)}
		} else {
			mode, bytes = mos6502.Absolute, []byte{byte(v), byte(v >> 8)}
		}
	}

	if !mos6502.SupportsMode(mnemonic, mode) {
		return 0, nil, errIllegalMode(line, mnemonic)
	}
	return mode, bytes, nil
}

// endsWithFold reports whether s ends with suffix, ignoring case.
func endsWithFold(s, suffix string) bool {
	if len(s) < len(suffix) {
		return false
	}
	return strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
