/*
cktdump is a console utility parsing a circuit description file and printing
its syntax tree as JSON. Usage is

	cktdump [-s] [-o <name>] <file>

-s flag selects strict mode: parsing stops at the first error instead of
recovering line by line;

-o <name> defines output file name, default is standard output;

<file> defines the circuit description file to parse.

In recovery mode every collected error is printed to standard error and the
exit code is 1 when any were found.
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cktlang/ckt"
	"github.com/cktlang/ckt/ast"
	"github.com/cktlang/ckt/parser"
)

var (
	strict                  bool
	inFileName, outFileName string
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  cktdump [-s] [-o <name>] <file>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tcircuit description file name")
	}

	flag.BoolVar(&strict, "s", false, "stop at the first error instead of recovering")
	flag.StringVar(&outFileName, "o", "", "output file name, default is standard output")
	flag.Parse()
	inFileName = flag.Arg(0)
	if inFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, e := os.ReadFile(inFileName)
	if e != nil {
		fatal(e)
	}

	var stmts []ast.Statement
	failed := false
	if strict {
		stmts, e = parser.ParseFile(inFileName, string(src))
		if e != nil {
			fatal(e)
		}
	} else {
		var errs []*ckt.Error
		stmts, errs = parser.ParseLines(inFileName, string(src))
		for _, pe := range errs {
			fmt.Fprintln(os.Stderr, pe.Error())
		}
		failed = len(errs) > 0
	}

	dump := make([]map[string]any, len(stmts))
	for i, st := range stmts {
		dump[i] = ast.StatementMap(st)
	}
	content, e := json.MarshalIndent(dump, "", "  ")
	if e != nil {
		fatal(e)
	}
	content = append(content, '\n')

	if outFileName == "" {
		_, e = os.Stdout.Write(content)
	} else {
		e = os.WriteFile(outFileName, content, 0o666)
	}
	if e != nil {
		fatal(e)
	}
	if failed {
		os.Exit(1)
	}
}

func fatal(e error) {
	fmt.Fprintln(os.Stderr, e.Error())
	os.Exit(1)
}
