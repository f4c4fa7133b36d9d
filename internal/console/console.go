// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package console implements a small interactive line-at-a-time front end
// for the assembler: lines typed by the user accumulate into an in-memory
// source buffer that is reassembled after every line, reporting the
// resulting code size and load address. The symbols command lists the
// symbol table of the last successful assembly.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/prefixtree/v2"

	"github.com/cjr29/rasm/asm"
	"github.com/cjr29/rasm/charset"
)

type handlerFunc func(c *Console, args string) error

type command struct {
	name        string
	description string
	handler     handlerFunc
}

// Console is an interactive session wrapping the assembler.
type Console struct {
	in      *bufio.Scanner
	out     io.Writer
	profile charset.Profile
	lines   []string
	tree    *prefixtree.Tree[*command]
	last    *asm.Result
}

// New creates a Console reading commands from in and writing output to out.
func New(in io.Reader, out io.Writer, profile charset.Profile) *Console {
	c := &Console{
		in:      bufio.NewScanner(in),
		out:     out,
		profile: profile,
		tree:    prefixtree.New[*command](),
	}
	for i := range commands {
		c.tree.Add(commands[i].name, &commands[i])
	}
	return c
}

var commands = []command{
	{"assemble", "assemble the accumulated source and report its size", cmdAssemble},
	{"symbols", "list the symbols known after the last assembly", cmdSymbols},
	{"reset", "discard the accumulated source buffer", cmdReset},
	{"list", "print the accumulated source buffer", cmdList},
	{"quit", "exit the console", cmdQuit},
}

var errQuit = fmt.Errorf("quit")

// Run reads lines until EOF or the quit command, treating anything that
// isn't a recognized command as another line of source to accumulate.
func (c *Console) Run() {
	fmt.Fprintln(c.out, "rasm interactive console -- type 'help' for commands")
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return
		}
		line := c.in.Text()
		if err := c.dispatch(line); err != nil {
			if err == errQuit {
				return
			}
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
	}
}

func (c *Console) dispatch(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil
	}

	fields := strings.SplitN(trimmed, " ", 2)
	name := fields[0]
	var args string
	if len(fields) > 1 {
		args = strings.TrimSpace(fields[1])
	}

	if name == "help" || name == "?" {
		c.printHelp()
		return nil
	}

	cmd, err := c.tree.Find(name)
	if err == nil {
		return cmd.handler(c, args)
	}

	// Not a recognized command: treat the whole line as source text.
	c.lines = append(c.lines, line)
	return cmdAssemble(c, "")
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(c.out, "  %-10s %s\n", cmd.name, cmd.description)
	}
}

func cmdAssemble(c *Console, args string) error {
	source := strings.Join(c.lines, "\n")
	result, err := asm.Assemble(source, c.profile)
	if err != nil {
		return err
	}
	c.last = result
	fmt.Fprintf(c.out, "assembled %d bytes, load address $%04x\n", len(result.Code), result.LoadAddr)
	return nil
}

func cmdSymbols(c *Console, args string) error {
	if c.last == nil {
		fmt.Fprintln(c.out, "nothing assembled yet")
		return nil
	}
	for name, value := range c.last.Symbols.Constants() {
		fmt.Fprintf(c.out, "  %-20s = $%04x\n", name, value)
	}
	for name, value := range c.last.Symbols.Labels() {
		fmt.Fprintf(c.out, "  %-20s : $%04x\n", name, value)
	}
	return nil
}

func cmdReset(c *Console, args string) error {
	c.lines = nil
	fmt.Fprintln(c.out, "source buffer cleared")
	return nil
}

func cmdList(c *Console, args string) error {
	for i, line := range c.lines {
		fmt.Fprintf(c.out, "%4d  %s\n", i+1, line)
	}
	return nil
}

func cmdQuit(c *Console, args string) error {
	return errQuit
}
