// Package validator checks a parsed document against a schema before
// execution is attempted. It never panics: every rule violation is
// appended to an accumulator and checking continues, so a caller sees
// every offending node in one pass rather than only the first.
package validator

import (
	"fmt"
	"strings"

	"github.com/zyxzen/graphqlite/ast"
	"github.com/zyxzen/graphqlite/errors"
	"github.com/zyxzen/graphqlite/schema"
)

type context struct {
	schema *schema.Schema
	errs   []*errors.QueryError
}

func (c *context) addErr(loc errors.Location, rule, format string, a ...interface{}) {
	c.errs = append(c.errs, &errors.QueryError{
		Message:   fmt.Sprintf(format, a...),
		Locations: []errors.Location{loc},
		Rule:      rule,
		Kind:      errors.KindValidation,
	})
}

// Validate checks every operation and fragment definition in doc against
// sch, implementing the six rule classes of spec §4.4. Fragment spreads
// are intentionally not resolved here (§9): a spread is accepted without
// inspecting the fragment it names.
func Validate(sch *schema.Schema, doc *ast.Document) []*errors.QueryError {
	c := &context{schema: sch}

	for _, op := range doc.Operations {
		validateOperation(c, op)
	}
	for _, frag := range doc.Fragments {
		t := c.schema.Resolve(frag.On.Name)
		if t == nil {
			c.addErr(frag.On.Loc, "KnownFragmentTypeCondition", "Unknown type %q in fragment %q.", frag.On.Name, frag.Name.Name)
			continue
		}
		validateSelectionSet(c, frag.Selections, t)
	}

	return c.errs
}

func validateOperation(c *context, op *ast.OperationDefinition) {
	root := c.schema.RootOperationType(string(op.Type))
	if root == nil {
		c.addErr(op.Loc, "OperationRoot", "Schema does not support %s", strings.ToLower(string(op.Type)))
		return
	}

	for _, v := range op.Vars {
		resolveTypeRef(c, v.Type)
	}

	if validateMaxDepth(c, op.Selections, 0) {
		return
	}

	validateSelectionSet(c, op.Selections, root)
}

// validateMaxDepth reports every field whose selection-set nesting
// exceeds sch.MaxDepth() and returns true if any did, so the caller can
// skip the rest of validation on an operation that is already too deep
// to usefully report further errors on. Checking is off when MaxDepth
// is 0. The operation's top-level fields are at depth 0, and each nested
// selection set adds one. Inline fragments don't add depth, since they resolve to fields
// at the same nesting level as their neighbors; fragment spreads aren't
// followed (see the FragmentSpread case in validateSelection).
func validateMaxDepth(c *context, sels []ast.Selection, depth int) bool {
	max := c.schema.MaxDepth()
	if max == 0 {
		return false
	}

	exceeded := false
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if depth > max {
				exceeded = true
				c.addErr(sel.Alias.Loc, "MaxDepthExceeded", "Field %q has depth %d that exceeds max depth %d", sel.Name.Name, depth, max)
				continue
			}
			exceeded = validateMaxDepth(c, sel.SelectionSet, depth+1) || exceeded

		case *ast.InlineFragment:
			exceeded = validateMaxDepth(c, sel.Selections, depth) || exceeded
		}
	}
	return exceeded
}

// resolveTypeRef resolves a type reference written in a document against
// the schema, reporting an error and returning nil if any named
// component is unknown.
func resolveTypeRef(c *context, ref ast.TypeRef) schema.Type {
	switch r := ref.(type) {
	case *ast.NamedTypeRef:
		t := c.schema.Resolve(r.Name)
		if t == nil {
			c.addErr(r.Loc, "VariableTypesExist", "Unknown type %q.", r.Name)
			return nil
		}
		return t
	case *ast.ListTypeRef:
		inner := resolveTypeRef(c, r.OfType)
		if inner == nil {
			return nil
		}
		return schema.List(inner)
	case *ast.NonNullTypeRef:
		inner := resolveTypeRef(c, r.OfType)
		if inner == nil {
			return nil
		}
		return schema.NonNull(inner)
	default:
		return nil
	}
}

func validateSelectionSet(c *context, sels []ast.Selection, parent schema.Type) {
	for _, sel := range sels {
		validateSelection(c, sel, parent)
	}
}

func validateSelection(c *context, sel ast.Selection, parent schema.Type) {
	switch sel := sel.(type) {
	case *ast.Field:
		validateField(c, sel, parent)

	case *ast.InlineFragment:
		target := parent
		if sel.On != nil && sel.On.Name != "" {
			t := c.schema.Resolve(sel.On.Name)
			if t == nil {
				c.addErr(sel.On.Loc, "FragmentTypeExists", "Unknown type %q.", sel.On.Name)
				return
			}
			target = t
		}
		validateSelectionSet(c, sel.Selections, target)

	case *ast.FragmentSpread:
		// Skipped: fragment spreads are parsed but never resolved by this
		// validator (spec §9, option (b): documented limitation rather
		// than full flattening).

	default:
		panic("unreachable")
	}
}

func validateField(c *context, f *ast.Field, parent schema.Type) {
	parentNamed := unwrapNamed(parent)
	fieldName := f.Name.Name

	var fieldType schema.Type

	switch fieldName {
	case "__typename":
		// Allowed on any composite parent, and handled directly by the
		// executor rather than looked up on parentNamed.
		fieldType = schema.String

	case "__schema":
		if !isQueryRoot(c, parentNamed) {
			c.addErr(f.Alias.Loc, "FieldsOnCorrectType", "Cannot query field %q outside the query root.", fieldName)
			return
		}
		fieldType = c.schema.Resolve("__Schema")

	case "__type":
		if !isQueryRoot(c, parentNamed) {
			c.addErr(f.Alias.Loc, "FieldsOnCorrectType", "Cannot query field %q outside the query root.", fieldName)
			return
		}
		if _, ok := f.Arguments.Get("name"); !ok {
			c.addErr(f.Alias.Loc, "ProvidedNonNullArguments", "Field %q argument %q of type %q is required but not provided.", fieldName, "name", "String!")
		}
		fieldType = c.schema.Resolve("__Type")

	default:
		fields := fieldsOf(parentNamed)
		if fields == nil {
			c.addErr(f.Alias.Loc, "FieldsOnCorrectType", "Cannot query field %q on non-composite type %q.", fieldName, typeString(parent))
			return
		}
		def := fields.Get(fieldName)
		if def == nil {
			c.addErr(f.Alias.Loc, "FieldsOnCorrectType", "Cannot query field %q on type %q.", fieldName, typeString(parentNamed))
			return
		}
		validateArguments(c, f, def.Args)
		fieldType = def.Type
	}

	if fieldType == nil {
		return
	}

	unwrapped := unwrapNamed(fieldType)
	hasSub := isComposite(unwrapped)
	switch {
	case hasSub && f.SelectionSet == nil:
		c.addErr(f.Alias.Loc, "ScalarLeafs", "Field %q of type %q must have a selection of subfields.", fieldName, typeString(fieldType))
	case !hasSub && f.SelectionSet != nil:
		c.addErr(f.Alias.Loc, "ScalarLeafs", "Field %q must not have a selection since type %q has no subfields.", fieldName, typeString(fieldType))
	}

	if hasSub && f.SelectionSet != nil {
		validateSelectionSet(c, f.SelectionSet, unwrapped)
	}
}

func validateArguments(c *context, f *ast.Field, argDefs schema.ArgList) {
	for _, a := range f.Arguments {
		if argDefs.Get(a.Name.Name) == nil {
			c.addErr(a.Name.Loc, "KnownArgumentNames", "Unknown argument %q on field %q.", a.Name.Name, f.Name.Name)
		}
	}
	for _, decl := range argDefs {
		if _, required := decl.Type.(*schema.NonNullType); required {
			if _, ok := f.Arguments.Get(decl.Name); !ok {
				c.addErr(f.Alias.Loc, "ProvidedNonNullArguments", "Field %q argument %q of type %q is required but not provided.", f.Name.Name, decl.Name, typeString(decl.Type))
			}
		}
	}
}

func isQueryRoot(c *context, t schema.NamedType) bool {
	root := c.schema.Query()
	return root != nil && t != nil && t.TypeName() == root.TypeName()
}

func fieldsOf(t schema.NamedType) schema.FieldList {
	switch t := t.(type) {
	case *schema.Object:
		return t.Fields
	case *schema.Interface:
		return t.Fields
	default:
		return nil
	}
}

func isComposite(t schema.NamedType) bool {
	switch t.(type) {
	case *schema.Object, *schema.Interface, *schema.Union:
		return true
	default:
		return false
	}
}

// unwrapNamed strips List/NonNull wrappers down to the underlying named
// type, returning nil if t is nil or an unresolved TypeReference slipped
// through (which would itself be a construction-time bug, not something
// this validator is responsible for catching).
func unwrapNamed(t schema.Type) schema.NamedType {
	for t != nil {
		switch tt := t.(type) {
		case schema.NamedType:
			return tt
		case *schema.ListType:
			t = tt.OfType
		case *schema.NonNullType:
			t = tt.OfType
		default:
			return nil
		}
	}
	return nil
}

func typeString(t interface{ String() string }) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
