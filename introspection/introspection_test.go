package introspection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyxzen/graphqlite/internal/executor"
	"github.com/zyxzen/graphqlite/internal/parser"
	"github.com/zyxzen/graphqlite/internal/validator"
	"github.com/zyxzen/graphqlite/introspection"
	"github.com/zyxzen/graphqlite/schema"
)

func buildTestSchema(t *testing.T) *schema.Schema {
	t.Helper()

	b := schema.New()
	character := b.Interface("Character")
	character.Field("name", schema.NonNull(schema.String))

	human := b.Object("Human")
	human.Implements("Character")
	human.Field("name", schema.NonNull(schema.String))
	human.Field("homePlanet", schema.String)

	query := b.Object("Query")
	query.Field("hero", schema.Ref("Character")).Resolve(
		func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return nil, nil
		},
	)

	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)
	introspection.Apply(sch)
	return sch
}

func run(t *testing.T, sch *schema.Schema, src string) *executor.Result {
	t.Helper()
	doc, qerr := parser.Parse(src)
	require.Nil(t, qerr)
	require.Empty(t, validator.Validate(sch, doc))
	return executor.Execute(context.Background(), sch, doc, "", nil)
}

// plain flattens a Result's *OrderedMap data into a regular
// map[string]interface{} for order-insensitive equality assertions.
func plain(t *testing.T, res *executor.Result) map[string]interface{} {
	t.Helper()
	if res.Data == nil {
		return nil
	}
	om, ok := res.Data.(*executor.OrderedMap)
	require.True(t, ok, "Data is %T, not *executor.OrderedMap", res.Data)
	return om.ToMap()
}

func TestSchemaQueryTypeName(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __schema { queryType { name } } }`)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{
		"__schema": map[string]interface{}{
			"queryType": map[string]interface{}{"name": "Query"},
		},
	}, plain(t, res))
}

func TestSchemaMutationTypeIsNullWhenAbsent(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __schema { mutationType { name } } }`)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{
		"__schema": map[string]interface{}{"mutationType": nil},
	}, plain(t, res))
}

func TestTypeByNameKnown(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __type(name: "Human") { name kind } }`)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{
		"__type": map[string]interface{}{"name": "Human", "kind": "OBJECT"},
	}, plain(t, res))
}

func TestTypeByNameUnknown(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __type(name: "DoesNotExist") { name } }`)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"__type": nil}, plain(t, res))
}

func TestTypeFieldsListsDeclaredFields(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __type(name: "Human") { fields { name } } }`)
	require.Empty(t, res.Errors)
	data := plain(t, res)
	typ := data["__type"].(map[string]interface{})
	fields := typ["fields"].([]interface{})
	var names []interface{}
	for _, f := range fields {
		names = append(names, f.(map[string]interface{})["name"])
	}
	assert.ElementsMatch(t, []interface{}{"name", "homePlanet"}, names)
}

func TestTypeInterfacesOfImplementingObject(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __type(name: "Human") { interfaces { name } } }`)
	require.Empty(t, res.Errors)
	data := plain(t, res)
	typ := data["__type"].(map[string]interface{})
	interfaces := typ["interfaces"].([]interface{})
	require.Len(t, interfaces, 1)
	assert.Equal(t, "Character", interfaces[0].(map[string]interface{})["name"])
}

func TestTypenameStillHandledDirectlyAlongsideIntrospection(t *testing.T) {
	sch := buildTestSchema(t)
	res := run(t, sch, `{ __typename }`)
	require.Empty(t, res.Errors)
	assert.Equal(t, map[string]interface{}{"__typename": "Query"}, plain(t, res))
}
