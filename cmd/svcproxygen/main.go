// Copyright (c) 2026 askguanyu
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// svcproxygen generates typed stubs for service contracts.
//
// For every contract interface it reads, it writes a stub type that
// implements the interface by forwarding each method to a proxy.Invoker,
// and registers the stub with proxy.RegisterStub so that
// svcclient.GetInstance can return it.
//
// Use it from a go:generate directive next to the contract:
//
//	//go:generate svcproxygen -in calculator.go -out calculator_stubs.go -types Calculator
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	flags := flag.NewFlagSet("svcproxygen", flag.ContinueOnError)
	flags.SetOutput(stderr)
	in := flags.String("in", "", "Go file declaring the contract interfaces")
	out := flags.String("out", "", "file to write the stubs to (default: <in>_stubs.go)")
	types := flags.String("types", "", "comma-separated interfaces to generate stubs for (default: every exported interface)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		return fmt.Errorf("-in is required")
	}
	if *out == "" {
		*out = strings.TrimSuffix(*in, ".go") + "_stubs.go"
	}

	src, err := ioutil.ReadFile(*in)
	if err != nil {
		return err
	}

	var names []string
	if *types != "" {
		for _, name := range strings.Split(*types, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	}

	code, err := Generate(filepath.Base(*in), src, names)
	if err != nil {
		return fmt.Errorf("failed to generate stubs for %q: %v", *in, err)
	}
	return ioutil.WriteFile(*out, code, 0644)
}
