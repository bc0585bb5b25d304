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

package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

const _proxyImportPath = "github.com/askguanyu/CodePlexDevLib-sub007/proxy"

// Names used by generated method bodies. Parameters with these names are
// renamed.
var _reserved = map[string]struct{}{
	"s":     {},
	"res":   {},
	"err":   {},
	"proxy": {},
	"_":     {},
}

type fileData struct {
	Source  string
	Package string
	Imports string
	Types   []*ifaceData
}

type ifaceData struct {
	Name    string
	Methods []*methodData
}

type methodData struct {
	Name     string
	Params   []paramData
	Results  []string
	HasError bool
}

type paramData struct {
	Name string
	Type string
}

// Generate returns the stubs of the named interfaces of a Go source file.
// With no names, every exported non-generic interface gets a stub.
func Generate(filename string, src []byte, names []string) ([]byte, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, 0)
	if err != nil {
		return nil, err
	}

	g := newGenerator(f)
	if len(names) == 0 {
		names = g.exportedInterfaces()
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%v declares no exported interfaces", filename)
	}

	data := fileData{Source: filename, Package: f.Name.Name}
	for _, name := range names {
		iface, err := g.iface(name)
		if err != nil {
			return nil, err
		}
		data.Types = append(data.Types, iface)
	}
	data.Imports = g.importBlock()

	var buf bytes.Buffer
	if err := _stubTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

type generator struct {
	file       *ast.File
	interfaces map[string]*ast.TypeSpec
	imports    map[string]string // local name -> import path
	used       map[string]struct{}
}

func newGenerator(f *ast.File) *generator {
	g := &generator{
		file:       f,
		interfaces: make(map[string]*ast.TypeSpec),
		imports:    make(map[string]string),
		used:       make(map[string]struct{}),
	}

	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if _, ok := ts.Type.(*ast.InterfaceType); ok {
				g.interfaces[ts.Name.Name] = ts
			}
		}
	}

	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		g.imports[name] = p
	}
	return g
}

func (g *generator) exportedInterfaces() []string {
	var names []string
	for _, decl := range g.file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			if _, ok := ts.Type.(*ast.InterfaceType); ok && ts.Name.IsExported() && ts.TypeParams == nil {
				names = append(names, ts.Name.Name)
			}
		}
	}
	return names
}

func (g *generator) iface(name string) (*ifaceData, error) {
	ts, ok := g.interfaces[name]
	if !ok {
		return nil, fmt.Errorf("interface %q is not declared in the file", name)
	}
	if ts.TypeParams != nil {
		return nil, fmt.Errorf("interface %q is generic", name)
	}

	data := &ifaceData{Name: name}
	seen := make(map[string]struct{})
	if err := g.collectMethods(ts, data, seen, map[string]struct{}{}); err != nil {
		return nil, err
	}
	return data, nil
}

// collectMethods appends the methods of ts to data in declaration order,
// expanding embedded interfaces where they appear.
func (g *generator) collectMethods(ts *ast.TypeSpec, data *ifaceData, seen, visiting map[string]struct{}) error {
	if _, ok := visiting[ts.Name.Name]; ok {
		return fmt.Errorf("interface %q embeds itself", ts.Name.Name)
	}
	visiting[ts.Name.Name] = struct{}{}
	defer delete(visiting, ts.Name.Name)

	it := ts.Type.(*ast.InterfaceType)
	for _, field := range it.Methods.List {
		if len(field.Names) == 0 {
			if err := g.embed(field.Type, data, seen, visiting); err != nil {
				return fmt.Errorf("interface %q: %v", ts.Name.Name, err)
			}
			continue
		}

		ft := field.Type.(*ast.FuncType)
		for _, n := range field.Names {
			if !n.IsExported() {
				return fmt.Errorf("interface %q: method %q is unexported", ts.Name.Name, n.Name)
			}
			if _, ok := seen[n.Name]; ok {
				continue
			}
			seen[n.Name] = struct{}{}
			data.Methods = append(data.Methods, g.method(n.Name, ft))
		}
	}
	return nil
}

func (g *generator) embed(expr ast.Expr, data *ifaceData, seen, visiting map[string]struct{}) error {
	ident, ok := expr.(*ast.Ident)
	if !ok {
		return fmt.Errorf("cannot resolve embedded %v; only interfaces declared in the same file can be embedded", types.ExprString(expr))
	}
	embedded, ok := g.interfaces[ident.Name]
	if !ok {
		return fmt.Errorf("embedded interface %q is not declared in the file", ident.Name)
	}
	return g.collectMethods(embedded, data, seen, visiting)
}

func (g *generator) method(name string, ft *ast.FuncType) *methodData {
	m := &methodData{Name: name}

	i := 0
	for _, field := range ft.Params.List {
		typ := g.typeString(field.Type)
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{nil}
		}
		for _, n := range names {
			pname := fmt.Sprintf("p%d", i)
			if n != nil {
				if _, reserved := _reserved[n.Name]; !reserved && !isResultName(n.Name) {
					pname = n.Name
				}
			}
			m.Params = append(m.Params, paramData{Name: pname, Type: typ})
			i++
		}
	}

	if ft.Results != nil {
		for _, field := range ft.Results.List {
			typ := g.typeString(field.Type)
			n := len(field.Names)
			if n == 0 {
				n = 1
			}
			for j := 0; j < n; j++ {
				m.Results = append(m.Results, typ)
			}
		}
	}
	if k := len(m.Results); k > 0 && m.Results[k-1] == "error" {
		m.HasError = true
		m.Results = m.Results[:k-1]
	}
	return m
}

// typeString renders a type expression and records the imports it uses.
func (g *generator) typeString(expr ast.Expr) string {
	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if x, ok := sel.X.(*ast.Ident); ok {
				g.used[x.Name] = struct{}{}
			}
			return false
		}
		return true
	})
	return types.ExprString(expr)
}

// importBlock renders the imports of the generated file: standard library
// packages first, then the rest.
func (g *generator) importBlock() string {
	var std, other []string
	for name := range g.used {
		p, ok := g.imports[name]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s %q", name, p)
		if isStdlib(p) {
			std = append(std, line)
		} else {
			other = append(other, line)
		}
	}
	other = append(other, fmt.Sprintf("proxy %q", _proxyImportPath))
	sort.Strings(std)
	sort.Strings(other)

	var groups []string
	if len(std) > 0 {
		groups = append(groups, strings.Join(std, "\n"))
	}
	groups = append(groups, strings.Join(other, "\n"))
	return strings.Join(groups, "\n\n")
}

func isStdlib(importPath string) bool {
	first := strings.SplitN(importPath, "/", 2)[0]
	return !strings.Contains(first, ".")
}

func isResultName(name string) bool {
	if len(name) < 2 || name[0] != 'r' {
		return false
	}
	_, err := strconv.Atoi(name[1:])
	return err == nil
}

// Signature renders the parameter list.
func (m *methodData) Signature() string {
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.Name + " " + p.Type
	}
	return strings.Join(parts, ", ")
}

// ResultList renders the result list.
func (m *methodData) ResultList() string {
	results := append([]string(nil), m.Results...)
	if m.HasError {
		results = append(results, "error")
	}
	switch len(results) {
	case 0:
		return ""
	case 1:
		return results[0]
	default:
		return "(" + strings.Join(results, ", ") + ")"
	}
}

// Call renders the call to the invoker. Methods without an error result
// panic with the invoker's error, so faults that the proxy does not
// swallow still reach the caller.
func (m *methodData) Call() string {
	args := []string{strconv.Quote(m.Name)}
	for _, p := range m.Params {
		args = append(args, p.Name)
	}
	call := "s.inv.Invoke(" + strings.Join(args, ", ") + ")"

	res := "_"
	if len(m.Results) > 0 {
		res = "res"
	}
	return res + ", err := " + call
}

// Return renders the return statement, if any.
func (m *methodData) Return() string {
	var values []string
	for i := range m.Results {
		values = append(values, fmt.Sprintf("r%d", i))
	}
	if m.HasError {
		values = append(values, "err")
	}
	if len(values) == 0 {
		return ""
	}
	return "return " + strings.Join(values, ", ")
}

var _stubTemplate = template.Must(template.New("stubs").Parse(`// Code generated by svcproxygen. DO NOT EDIT.
// source: {{.Source}}

package {{.Package}}

import (
{{.Imports}}
)

func init() {
{{range .Types}}proxy.RegisterStub[{{.Name}}](New{{.Name}}Stub)
{{end}}}
{{range .Types}}{{$iface := .}}
// {{.Name}}Stub implements {{.Name}} by forwarding every method to a
// proxy.Invoker.
type {{.Name}}Stub struct {
	inv proxy.Invoker
}

var _ {{.Name}} = (*{{.Name}}Stub)(nil)

// New{{.Name}}Stub returns a {{.Name}} that calls inv.
func New{{.Name}}Stub(inv proxy.Invoker) {{.Name}} {
	return &{{.Name}}Stub{inv: inv}
}
{{range .Methods}}
// {{.Name}} forwards to the "{{.Name}}" method of the invoker.
func (s *{{$iface.Name}}Stub) {{.Name}}({{.Signature}}) {{.ResultList}} {
	{{.Call}}
{{if not .HasError}}	if err != nil {
		panic(err)
	}
{{end}}{{range $i, $r := .Results}}	var r{{$i}} {{$r}}
	if len(res) > {{$i}} {
		r{{$i}}, _ = res[{{$i}}].({{$r}})
	}
{{end}}{{with .Return}}	{{.}}
{{end}}}
{{end}}{{end}}`))
