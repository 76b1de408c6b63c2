// Package buildutil extracts call attributes from buildtools syntax trees.
package buildutil

import (
	"github.com/bazelbuild/buildtools/build"
)

// Attr returns the right-hand side of the keyword argument name, or nil.
func Attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}

// StringExpr returns the keyword argument name when it is a string literal.
// An empty name selects the first positional argument.
func StringExpr(call *build.CallExpr, name string) *build.StringExpr {
	if name == "" {
		if len(call.List) == 0 {
			return nil
		}
		str, _ := call.List[0].(*build.StringExpr)
		return str
	}
	str, _ := Attr(call, name).(*build.StringExpr)
	return str
}

// String extracts a string attribute from a function call by name.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if str := StringExpr(call, name); str != nil {
		return str.Value
	}
	return ""
}

// StringList extracts a list of strings attribute from a function call by name.
// Non-string elements in the list are silently skipped.
func StringList(call *build.CallExpr, name string) []string {
	exprs := StringExprs(call, name)
	if exprs == nil {
		return nil
	}
	result := make([]string, 0, len(exprs))
	for _, str := range exprs {
		result = append(result, str.Value)
	}
	return result
}

// StringExprs returns the string literals of a list attribute.
// Returns nil if the attribute is not found or not a list.
func StringExprs(call *build.CallExpr, name string) []*build.StringExpr {
	list, ok := Attr(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	result := make([]*build.StringExpr, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str)
		}
	}
	return result
}

// FuncName returns the called name, dotted for method calls such as
// maven.artifact. Returns empty string for any other callee.
func FuncName(call *build.CallExpr) string {
	return dotted(call.X)
}

func dotted(x build.Expr) string {
	switch e := x.(type) {
	case *build.Ident:
		return e.Name
	case *build.DotExpr:
		if prefix := dotted(e.X); prefix != "" {
			return prefix + "." + e.Name
		}
	}
	return ""
}

// IsFuncCall returns true if the call is for the specified function name.
func IsFuncCall(call *build.CallExpr, name string) bool {
	return FuncName(call) == name
}
