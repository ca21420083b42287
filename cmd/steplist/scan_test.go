package main

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePkg = "github.com/tmr232/resumable/sample"

func TestScanSample(t *testing.T) {
	defs, err := Scan(ScanConfig{Dir: "../../sample"})
	require.NoError(t, err)

	byName := make(map[string]Definition)
	for _, def := range defs {
		assert.Equal(t, samplePkg, def.Package)
		byName[def.Name] = def
	}

	tests := []struct {
		name       string
		returns    []string
		constructs []string
	}{
		{"Fibonacci", []string{"*step.Generator"}, []string{"step.NewGenerator"}},
		{"FibonacciUpTo", []string{"*step.Driver"}, []string{"step.Go"}},
		{"Delegating", []string{"*step.Generator"}, []string{"step.Delegate", "step.FromDriver", "step.Go"}},
		{"FetchSubject", []string{"*step.Driver"}, []string{"step.Go"}},
		{"ManualFibonacci", []string{"*step.FuncProducer"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, ok := byName[tt.name]
			require.True(t, ok, "%s not found", tt.name)
			assert.Equal(t, tt.returns, def.Returns)
			assert.Equal(t, tt.constructs, def.Constructs)
		})
	}

	assert.NotContains(t, byName, "FibonacciCounter")
	assert.NotContains(t, byName, "NewFibonacciIterator")
	assert.NotContains(t, byName, "FakeFetch")
}

func TestScanSkipsStepPackage(t *testing.T) {
	defs, err := Scan(ScanConfig{Dir: "../../step"})
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestFuncName(t *testing.T) {
	src := `package p
func Plain() {}
func (s *S) Pointer() {}
func (s S) Value() {}
func (g *G[T]) Generic() {}
func (m M[K, V]) Pair() {}
`
	f, err := parser.ParseFile(token.NewFileSet(), "p.go", src, 0)
	require.NoError(t, err)

	var names []string
	for _, decl := range f.Decls {
		names = append(names, funcName(decl.(*ast.FuncDecl)))
	}
	assert.Equal(t, []string{"Plain", "S.Pointer", "S.Value", "G.Generic", "M.Pair"}, names)
}

func TestDefinitionString(t *testing.T) {
	def := Definition{
		Package:    "example.com/p",
		Name:       "Numbers",
		Returns:    []string{"*step.Generator"},
		Constructs: []string{"step.NewGenerator"},
	}
	assert.Equal(t, "example.com/p.Numbers returns *step.Generator uses step.NewGenerator", def.String())
}

func TestListCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := newApp(&stdout, &stderr).Run([]string{"steplist", "--dir", "../../sample", "--positions"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Len(t, lines, 14)
	for _, line := range lines {
		assert.Contains(t, line, "sample")
		assert.Contains(t, line, "\t"+samplePkg)
	}
}
