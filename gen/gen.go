// Package gen renders tree patterns as Go source for ahead-of-time
// compilation.
//
// Given an expression tree, File produces a self-contained Go file
// declaring a package-level pattern compiled once at program start:
//
//	src, err := gen.File("patterns", "Doubled",
//	    expr.Named("x"), expr.More(expr.Ref("x")))
//	// var Doubled = treegex.MustCompile(treegex.Named("x", ...), ...)
//
// Patterns containing Check predicates cannot be generated: functions
// have no source representation. Literal values are limited to Go's
// basic types (bool, string, integers, floats) and nil.
package gen

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/treegex/expr"
)

const treegexPath = "github.com/coregx/treegex"

// Generation errors
var (
	// ErrPredicate indicates the pattern contains a Check predicate,
	// which has no source representation
	ErrPredicate = errors.New("patterns with Check predicates cannot be generated")

	// ErrValue indicates a literal value outside Go's basic types
	ErrValue = errors.New("unsupported literal value")
)

// File renders a Go source file for package pkgName declaring
//
//	var <varName> = treegex.MustCompile(<pattern>...)
//
// The output is gofmt-formatted and carries a DO NOT EDIT header.
func File(pkgName, varName string, pattern ...*expr.Node) (string, error) {
	args := make([]jen.Code, 0, len(pattern))
	for _, n := range pattern {
		code, err := render(n)
		if err != nil {
			return "", err
		}
		args = append(args, code)
	}

	f := jen.NewFile(pkgName)
	f.ImportName(treegexPath, "treegex")
	f.HeaderComment("Code generated by treegex/gen. DO NOT EDIT.")
	f.Var().Id(varName).Op("=").Qual(treegexPath, "MustCompile").Call(args...)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// render emits the combinator call (or raw value, relying on the
// builder's auto-lifting) reconstructing one node.
func render(n *expr.Node) (jen.Code, error) {
	switch n.Kind() {
	case expr.KindLiteral:
		return renderValue(n.Value())

	case expr.KindSubseq:
		items, err := renderAll(n.Children())
		if err != nil {
			return nil, err
		}
		return jen.Index().Id("any").Values(items...), nil

	case expr.KindAnything:
		return jen.Qual(treegexPath, "Anything").Call(), nil

	case expr.KindEnd:
		return jen.Qual(treegexPath, "End").Call(), nil

	case expr.KindOr:
		return renderCall("Or", n.Children())

	case expr.KindGroup:
		return renderCall("Group", n.Children())

	case expr.KindNamed:
		children, err := renderAll(n.Children())
		if err != nil {
			return nil, err
		}
		args := append([]jen.Code{jen.Lit(n.Name())}, children...)
		return jen.Qual(treegexPath, "Named").Call(args...), nil

	case expr.KindRef:
		return jen.Qual(treegexPath, "Ref").Call(jen.Lit(n.Name())), nil

	case expr.KindCheck:
		return nil, ErrPredicate

	case expr.KindMaybe:
		return renderCall(pick(n.Greedy(), "Maybe", "MaybeNG"), n.Children())

	case expr.KindMany:
		return renderCall(pick(n.Greedy(), "Many", "ManyNG"), n.Children())

	case expr.KindMore:
		return renderCall(pick(n.Greedy(), "More", "MoreNG"), n.Children())

	default:
		return nil, fmt.Errorf("gen: unknown expression kind %v", n.Kind())
	}
}

func renderCall(name string, children []*expr.Node) (jen.Code, error) {
	args, err := renderAll(children)
	if err != nil {
		return nil, err
	}
	return jen.Qual(treegexPath, name).Call(args...), nil
}

func renderAll(nodes []*expr.Node) ([]jen.Code, error) {
	out := make([]jen.Code, 0, len(nodes))
	for _, n := range nodes {
		code, err := render(n)
		if err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

func renderValue(v any) (jen.Code, error) {
	switch v.(type) {
	case nil:
		return jen.Nil(), nil
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return jen.Lit(v), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrValue, v)
	}
}

func pick(greedy bool, g, ng string) string {
	if greedy {
		return g
	}
	return ng
}
