package main

import (
	"fmt"
	"go/ast"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
	"golang.org/x/xerrors"

	"github.com/tmr232/resumable/step"
)

var stepPkgPath = reflect.TypeOf(new(step.Driver[struct{}, struct{}, struct{}])).Elem().PkgPath()

// Types that mark a function as handing out a suspendable computation.
var resultTypes = map[string]bool{
	"Driver":       true,
	"Generator":    true,
	"Continuation": true,
	"FuncProducer": true,
}

// Functions that build one.
var constructors = map[string]bool{
	"Go":           true,
	"New":          true,
	"NewGenerator": true,
	"FromDriver":   true,
	"Routine":      true,
	"Delegate":     true,
}

// Definition is a function that returns or builds a step computation.
type Definition struct {
	Package    string
	Name       string
	Position   string
	Returns    []string
	Constructs []string
}

func (d Definition) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s.%s", d.Package, d.Name)
	if len(d.Returns) > 0 {
		fmt.Fprintf(&b, " returns %s", strings.Join(d.Returns, ", "))
	}
	if len(d.Constructs) > 0 {
		fmt.Fprintf(&b, " uses %s", strings.Join(d.Constructs, ", "))
	}
	return b.String()
}

type ScanConfig struct {
	Dir      string
	Tags     []string
	Tests    bool
	Patterns []string
}

func Scan(cfg ScanConfig) ([]Definition, error) {
	pcfg := &packages.Config{
		Mode:  packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedSyntax | packages.NeedName,
		Dir:   cfg.Dir,
		Tests: cfg.Tests,
	}
	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{fmt.Sprintf("-tags=%s", strings.Join(cfg.Tags, ","))}
	}
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	pkgs, err := packages.Load(pcfg, patterns...)
	if err != nil {
		return nil, xerrors.Errorf("loading %v: %w", patterns, err)
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		return nil, xerrors.Errorf("%d errors while loading packages", n)
	}

	seen := make(map[string]bool)
	var defs []Definition
	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			for _, decl := range f.Decls {
				fdecl, ok := decl.(*ast.FuncDecl)
				if !ok {
					continue
				}
				def, ok := inspect(pkg, fdecl)
				if !ok || seen[def.Position] {
					continue
				}
				seen[def.Position] = true
				defs = append(defs, def)
			}
		}
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Package != defs[j].Package {
			return defs[i].Package < defs[j].Package
		}
		return defs[i].Name < defs[j].Name
	})
	return defs, nil
}

func funcName(fdecl *ast.FuncDecl) string {
	if fdecl.Recv == nil || len(fdecl.Recv.List) == 0 {
		return fdecl.Name.Name
	}
	recv := fdecl.Recv.List[0].Type
	if star, ok := recv.(*ast.StarExpr); ok {
		recv = star.X
	}
	switch r := recv.(type) {
	case *ast.IndexExpr:
		recv = r.X
	case *ast.IndexListExpr:
		recv = r.X
	}
	if ident, ok := recv.(*ast.Ident); ok {
		return ident.Name + "." + fdecl.Name.Name
	}
	return fdecl.Name.Name
}

// inspect reports whether fdecl is a step definition, and describes it.
// Functions inside the step package itself are skipped.
func inspect(pkg *packages.Package, fdecl *ast.FuncDecl) (Definition, bool) {
	if pkg.PkgPath == stepPkgPath {
		return Definition{}, false
	}
	def := Definition{
		Package:  pkg.PkgPath,
		Name:     funcName(fdecl),
		Position: pkg.Fset.Position(fdecl.Pos()).String(),
	}

	if results := fdecl.Type.Results; results != nil {
		for _, field := range results.List {
			if name, ok := stepType(pkg.TypesInfo.TypeOf(field.Type)); ok {
				def.Returns = append(def.Returns, name)
			}
		}
	}

	if fdecl.Body != nil {
		visitor := &constructorVisitor{pkg: pkg, found: make(map[string]bool)}
		ast.Walk(visitor, fdecl.Body)
		for name := range visitor.found {
			def.Constructs = append(def.Constructs, "step."+name)
		}
		sort.Strings(def.Constructs)
	}

	return def, len(def.Returns) > 0 || len(def.Constructs) > 0
}

// stepType names t if it is one of the step result types, or a pointer to one.
func stepType(t types.Type) (string, bool) {
	if t == nil {
		return "", false
	}
	prefix := ""
	if ptr, ok := t.(*types.Pointer); ok {
		prefix = "*"
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return "", false
	}
	if named.Obj().Pkg().Path() != stepPkgPath || !resultTypes[named.Obj().Name()] {
		return "", false
	}
	return prefix + "step." + named.Obj().Name(), true
}

type constructorVisitor struct {
	pkg   *packages.Package
	found map[string]bool
}

// Visit records every use of a step constructor, called or not.
func (v *constructorVisitor) Visit(n ast.Node) ast.Visitor {
	ident, isIdent := n.(*ast.Ident)
	if !isIdent {
		return v
	}
	obj, exists := v.pkg.TypesInfo.Uses[ident]
	if !exists || obj.Pkg() == nil || obj.Pkg().Path() != stepPkgPath {
		return nil
	}
	if _, isFunc := obj.(*types.Func); isFunc && constructors[obj.Name()] {
		v.found[obj.Name()] = true
	}
	return nil
}
