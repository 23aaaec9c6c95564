package executor_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyxzen/graphqlite/internal/executor"
	"github.com/zyxzen/graphqlite/internal/parser"
	"github.com/zyxzen/graphqlite/schema"
)

func exec(t *testing.T, sch *schema.Schema, src string, vars map[string]interface{}) *executor.Result {
	t.Helper()
	doc, qerr := parser.Parse(src)
	require.Nil(t, qerr)
	return executor.Execute(context.Background(), sch, doc, "", vars)
}

// plain flattens a Result's *OrderedMap data into a regular
// map[string]interface{} for order-insensitive equality assertions. A
// nil Data (a non-null failure reached the root) stays nil.
func plain(t *testing.T, res *executor.Result) map[string]interface{} {
	t.Helper()
	if res.Data == nil {
		return nil
	}
	om, ok := res.Data.(*executor.OrderedMap)
	require.True(t, ok, "Data is %T, not *executor.OrderedMap", res.Data)
	return om.ToMap()
}

func TestExecuteScalarField(t *testing.T) {
	b := schema.New()
	b.Object("Query").Field("hello", schema.NonNull(schema.String)).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return "World", nil
		},
	)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ hello }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"hello": "World"}, plain(t, res))
}

func TestExecuteNestedObject(t *testing.T) {
	b := schema.New()
	human := b.Object("Human")
	human.Field("name", schema.NonNull(schema.String))
	human.Field("homePlanet", schema.String)

	b.Object("Query").Field("hero", schema.Ref("Human")).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return map[string]interface{}{"name": "Luke", "homePlanet": "Tatooine"}, nil
		},
	)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ hero { name homePlanet } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{
		"hero": map[string]interface{}{"name": "Luke", "homePlanet": "Tatooine"},
	}, plain(t, res))
}

func TestExecutePropagatesNullThroughNonNullChain(t *testing.T) {
	b := schema.New()
	human := b.Object("Human")
	human.Field("name", schema.NonNull(schema.String)).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return nil, nil
		},
	)

	b.Object("Query").Field("hero", schema.NonNull(schema.Ref("Human"))).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return map[string]interface{}{}, nil
		},
	)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ hero { name } }`, nil)
	assert.Nil(t, res.Data)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Cannot return null for non-null field", res.Errors[0].Message)
}

func TestExecuteListOfNonNullCollapsesOnNullElement(t *testing.T) {
	b := schema.New()
	b.Object("Query").Field("names", schema.List(schema.NonNull(schema.String))).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return []interface{}{"Leia", nil, "Han"}, nil
		},
	)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ names }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Cannot return null for non-null field", res.Errors[0].Message)
	assert.Equal(t, map[string]interface{}{"names": nil}, plain(t, res))
}

func TestExecuteSkipDirective(t *testing.T) {
	b := schema.New()
	query := b.Object("Query")
	query.Field("a", schema.String).Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
		return "a", nil
	})
	query.Field("b", schema.String).Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
		return "b", nil
	})
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ a @skip(if: true) b }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"b": "b"}, plain(t, res))
}

func TestExecuteVariableCoercion(t *testing.T) {
	b := schema.New()
	b.Object("Query").Field("echo", schema.String).
		Argument("value", schema.NonNull(schema.String)).
		Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Args["value"], nil
		})
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `query ($v: String!) { echo(value: $v) }`, map[string]interface{}{"v": "hi"})
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"echo": "hi"}, plain(t, res))
}

func TestExecuteMissingRequiredVariableIsExecutionError(t *testing.T) {
	b := schema.New()
	b.Object("Query").Field("echo", schema.String).
		Argument("value", schema.String)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `query ($v: String!) { echo }`, nil)
	require.Len(t, res.Errors, 1)
}

func TestExecuteUnsetOptionalVariableInNonNullArgumentIsExecutionError(t *testing.T) {
	b := schema.New()
	b.Object("Query").Field("echo", schema.String).
		Argument("id", schema.NonNull(schema.ID)).
		Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Args["id"], nil
		})
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	// $uid is optional (no "!", no default) and not supplied, so
	// coerceVariables correctly leaves it out of vars. The argument must
	// still fail rather than hand the resolver a null for an ID!.
	res := exec(t, sch, `query ($uid: ID) { echo(id: $uid) }`, nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, map[string]interface{}{"echo": nil}, plain(t, res))
}

func TestExecuteTypenameOnInterface(t *testing.T) {
	b := schema.New()
	character := b.Interface("Character")
	character.Field("name", schema.NonNull(schema.String))
	character.ResolveType(func(value interface{}) string {
		m := value.(map[string]interface{})
		return m["__type"].(string)
	})

	human := b.Object("Human")
	human.Implements("Character")
	human.Field("name", schema.NonNull(schema.String))

	b.Object("Query").Field("hero", schema.Ref("Character")).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return map[string]interface{}{"__type": "Human", "name": "Leia"}, nil
		},
	)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ hero { __typename name } }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{
		"hero": map[string]interface{}{"__typename": "Human", "name": "Leia"},
	}, plain(t, res))
}

func TestExecuteUnknownFieldResolvesToNull(t *testing.T) {
	b := schema.New()
	b.Object("Query").Field("hello", schema.String)
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ hello }`, nil)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"hello": nil}, plain(t, res))
}

// TestExecuteOrdersResponseKeysByFirstAppearance covers spec invariant 2:
// response object keys must appear in the exact order their selections
// were first encountered, regardless of field declaration order on the
// schema or of Go's own map key ordering.
func TestExecuteOrdersResponseKeysByFirstAppearance(t *testing.T) {
	b := schema.New()
	query := b.Object("Query")
	for _, name := range []string{"zebra", "apple", "mango"} {
		name := name
		query.Field(name, schema.String).Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return name, nil
		})
	}
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)

	res := exec(t, sch, `{ mango apple zebra }`, nil)
	require.Empty(t, res.Errors)

	encoded, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.Equal(t, `{"mango":"mango","apple":"apple","zebra":"zebra"}`, string(encoded))
}
