// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rasm assembles a 6502 source file into a Commodore .prg image.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cjr29/rasm/asm"
	"github.com/cjr29/rasm/charset"
	"github.com/cjr29/rasm/internal/console"
)

func main() {
	var (
		output      = flag.String("o", "", "output .prg file path (default: INPUT with .prg extension)")
		target      = flag.String("t", "c64", "target character-set profile")
		interactive = flag.Bool("i", false, "start an interactive console instead of assembling a file")
	)
	flag.Usage = usage
	flag.Parse()

	if *interactive || flag.Arg(0) == "repl" {
		console.New(os.Stdin, os.Stdout, charset.Lookup(*target)).Run()
		return
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	if err := run(input, *output, *target); err != nil {
		exitOnError(err)
	}
}

func run(input, output, target string) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	profile := charset.Lookup(target)
	result, err := asm.Assemble(string(src), profile)
	if err != nil {
		return err
	}

	if output == "" {
		output = defaultOutputName(input)
	}
	return os.WriteFile(output, result.PRG(), 0644)
}

// defaultOutputName derives an output path from input by replacing its
// extension with .prg, or appending .prg if input has none.
func defaultOutputName(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		return input + ".prg"
	}
	return strings.TrimSuffix(input, ext) + ".prg"
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: rasm [-o OUTPUT] [-t TARGET] INPUT\n")
	flag.PrintDefaults()
}

func exitOnError(err error) {
	fmt.Fprintf(os.Stderr, "\x1b[31mERROR:\x1b[0m %v\n", err)
	os.Exit(1)
}
