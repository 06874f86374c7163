package forge

import (
	"fmt"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Lookup methods accepted by ColumnDecl.Method.
const (
	methodAuto       = ""
	methodVLookup    = "vlookup"
	methodIndexMatch = "index_match"
)

// compile turns a column declaration into a formula spec for the cell at c.
// References are resolved here, so each call sees the registry as it is now.
func compile(c rowContext, decl models.ColumnDecl, mode formula.ErrorMode) (formula.Spec, error) {
	switch decl.Kind {
	case models.ColumnPassthrough:
		return formula.Spec{Kind: formula.KindPassthrough, Source: c.cell(decl.Source)}, nil
	case models.ColumnLookup:
		return compileLookup(c, decl, mode)
	case models.ColumnRatio:
		return formula.Spec{
			Kind: formula.KindRatio,
			Ratio: formula.Ratio{
				Numerator:   c.optionalExpr(decl.Numerator),
				Denominator: c.optionalExpr(decl.Denominator),
				Zero:        c.optionalExpr(decl.Zero),
			},
		}, nil
	case models.ColumnConditional:
		cond := formula.Conditional{Default: c.optionalExpr(decl.Else)}
		for _, arm := range decl.Arms {
			cond.Arms = append(cond.Arms, formula.Arm{
				Left:  c.optionalExpr(arm.Left),
				Op:    arm.Op,
				Right: c.optionalExpr(arm.Right),
				Then:  c.optionalExpr(arm.Then),
			})
		}
		return formula.Spec{Kind: formula.KindConditional, Conditional: cond}, nil
	case models.ColumnExpression:
		return formula.Spec{Kind: formula.KindExpression, Expression: c.optionalExpr(decl.Expr)}, nil
	}
	return formula.Spec{}, fmt.Errorf("%w: unknown column kind %q", formula.ErrInvalidSpec, decl.Kind)
}

func compileLookup(c rowContext, decl models.ColumnDecl, mode formula.ErrorMode) (formula.Spec, error) {
	if decl.OnError != "" {
		m, err := formula.ParseErrorMode(decl.OnError)
		if err != nil {
			return formula.Spec{}, err
		}
		mode = m
	}
	l := formula.Lookup{
		Value:   c.optionalExpr(decl.Value),
		Default: c.optionalExpr(decl.Default),
		Mode:    mode,
	}

	key, err := c.plan.Registry.Resolve(decl.Table, decl.Key)
	if err != nil {
		return formula.Spec{}, err
	}
	ret, err := c.plan.Registry.Resolve(decl.Table, decl.Column)
	if err != nil {
		return formula.Spec{}, err
	}

	whole := c.wholeColumns(decl.Table, decl.Bounded)
	method := decl.Method
	if method == methodAuto {
		method = methodVLookup
		if ret.Index < key.Index {
			method = methodIndexMatch
		}
	}
	switch method {
	case methodVLookup:
		if ret.Index < key.Index {
			return formula.Spec{}, &formula.SpecError{
				Kind:  formula.KindLookup,
				Field: "column",
				Msg:   fmt.Sprintf("%q is left of key %q; use index_match", decl.Column, decl.Key),
			}
		}
		l.Table = c.block(decl.Table, key, ret, whole)
		l.Column = ret.Index - key.Index + 1
	case methodIndexMatch:
		l.Match = c.block(decl.Table, key, key, whole)
		l.Return = c.block(decl.Table, ret, ret, whole)
	default:
		return formula.Spec{}, &formula.SpecError{
			Kind:  formula.KindLookup,
			Field: "method",
			Msg:   fmt.Sprintf("unknown method %q (must be vlookup or index_match)", method),
		}
	}
	return formula.Spec{Kind: formula.KindLookup, Lookup: l}, nil
}
