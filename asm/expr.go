// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// evalExpr resolves a textual expression to a 16-bit value using view for
// constant and label lookups. It implements the flat grammar:
//
//	expr   := [ '<' | '>' ] term
//	term   := primary [ ('+'|'-') primary ]
//	primary:= number-literal | identifier
//
// A leading '<' selects the low byte of the inner result; a leading '>'
// selects the high byte. At most one binary '+' or '-' is supported; its
// first occurrence splits the expression. Arithmetic wraps modulo 2^16.
// evalExpr is pure: pass-sensitive forward-reference handling (degrading
// an unresolved symbol to a placeholder) is the caller's responsibility.
func evalExpr(text string, view SymbolView) (uint16, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	selector := byte(0)
	if text[0] == '<' || text[0] == '>' {
		selector = text[0]
		text = strings.TrimSpace(text[1:])
	}

	value, ok := evalTerm(text, view)
	if !ok {
		return 0, false
	}

	switch selector {
	case '<':
		return value & 0xff, true
	case '>':
		return (value >> 8) & 0xff, true
	default:
		return value, true
	}
}

func evalTerm(text string, view SymbolView) (uint16, bool) {
	splitAt, op := -1, byte(0)
	for i := 0; i < len(text); i++ {
		if text[i] == '+' || text[i] == '-' {
			splitAt, op = i, text[i]
			break
		}
	}

	if splitAt < 0 {
		return evalPrimary(text, view)
	}

	left, ok := evalPrimary(strings.TrimSpace(text[:splitAt]), view)
	if !ok {
		return 0, false
	}
	right, ok := evalPrimary(strings.TrimSpace(text[splitAt+1:]), view)
	if !ok {
		return 0, false
	}

	if op == '+' {
		return left + right, true // uint16 addition wraps mod 2^16
	}
	return left - right, true // uint16 subtraction wraps mod 2^16
}

func evalPrimary(text string, view SymbolView) (uint16, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	if v, ok := parseNumber(text); ok {
		return v, true
	}

	if !isIdentifier(text) {
		return 0, false
	}
	if v, ok := view.LookupConstant(text); ok {
		return v, true
	}
	if v, ok := view.LookupLabel(text); ok {
		return v, true
	}
	return 0, false
}
