package validator_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyxzen/graphqlite/errors"
	"github.com/zyxzen/graphqlite/internal/parser"
	"github.com/zyxzen/graphqlite/internal/validator"
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
	query.Field("hero", schema.Ref("Character"))
	query.Field("human", schema.Ref("Human")).
		Argument("id", schema.NonNull(schema.ID))
	query.Field("greeting", schema.NonNull(schema.String)).
		Argument("name", schema.String).Default("World").
		Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return "hi", nil
		})

	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)
	return sch
}

func validate(t *testing.T, sch *schema.Schema, src string) []*errors.QueryError {
	t.Helper()
	doc, qerr := parser.Parse(src)
	require.Nil(t, qerr)
	return validator.Validate(sch, doc)
}

func TestValidateAcceptsWellFormedQuery(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ human(id: "1000") { name homePlanet } }`)
	assert.Empty(t, errs)
}

func TestValidateRejectsUnknownField(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ human(id: "1000") { name age } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "FieldsOnCorrectType", errs[0].Rule)
}

func TestValidateRejectsUnknownArgument(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ human(id: "1000", nickname: "Ham") { name } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "KnownArgumentNames", errs[0].Rule)
}

func TestValidateRequiresNonNullArgument(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ human { name } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "ProvidedNonNullArguments", errs[0].Rule)
}

func TestValidateRequiresSubSelectionOnCompositeField(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ hero }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "ScalarLeafs", errs[0].Rule)
}

func TestValidateForbidsSubSelectionOnLeafField(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ human(id: "1") { name { first } } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "ScalarLeafs", errs[0].Rule)
}

func TestValidateInlineFragmentOnUnknownType(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ hero { ... on Wookiee { name } } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "FragmentTypeExists", errs[0].Rule)
}

func TestValidateInlineFragmentOnKnownType(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ hero { ... on Human { name homePlanet } } }`)
	assert.Empty(t, errs)
}

func TestValidateFragmentDefinitionUnknownTypeCondition(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `
		{ hero { ...info } }
		fragment info on Ewok { name }
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, "KnownFragmentTypeCondition", errs[0].Rule)
}

func TestValidateFragmentDefinitionKnownTypeCondition(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `
		{ hero { ...info } }
		fragment info on Human { name homePlanet }
	`)
	assert.Empty(t, errs)
}

func TestValidateFragmentSpreadIsNotInspected(t *testing.T) {
	sch := buildTestSchema(t)
	// The spread itself is accepted with no error even though nothing
	// checks that "doesNotExist" is an actual fragment name (spec §9).
	errs := validate(t, sch, `{ hero { ...doesNotExist } }`)
	assert.Empty(t, errs)
}

func TestValidateUnsupportedOperationRoot(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `mutation { human(id: "1") { name } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "OperationRoot", errs[0].Rule)
}

func TestValidateUnknownVariableType(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `query ($id: Ewok) { human(id: "1") { name } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "VariableTypesExist", errs[0].Rule)
}

func buildNestedTestSchema(t *testing.T, maxDepth int) *schema.Schema {
	t.Helper()

	b := schema.New()
	b.Options(schema.WithMaxDepth(maxDepth))

	node := b.Object("Node")
	node.Field("name", schema.String)
	node.Field("child", schema.Ref("Node"))

	b.Object("Query").Field("node", schema.Ref("Node"))

	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)
	return sch
}

func TestValidateMaxDepthExceeded(t *testing.T) {
	sch := buildNestedTestSchema(t, 2)
	errs := validate(t, sch, `{ node { child { child { name } } } }`)
	require.Len(t, errs, 1)
	assert.Equal(t, "MaxDepthExceeded", errs[0].Rule)
}

func TestValidateMaxDepthWithinLimit(t *testing.T) {
	sch := buildNestedTestSchema(t, 3)
	errs := validate(t, sch, `{ node { child { child { name } } } }`)
	assert.Empty(t, errs)
}

func TestValidateMaxDepthZeroDisablesCheck(t *testing.T) {
	sch := buildNestedTestSchema(t, 0)
	errs := validate(t, sch, `{ node { child { child { child { child { name } } } } } }`)
	assert.Empty(t, errs)
}

func TestValidateMaxDepthIgnoresInlineFragmentNesting(t *testing.T) {
	sch := buildNestedTestSchema(t, 2)
	errs := validate(t, sch, `{ node { ... on Node { child { name } } } }`)
	assert.Empty(t, errs)
}

func TestValidateTypenameAllowedEverywhere(t *testing.T) {
	sch := buildTestSchema(t)
	errs := validate(t, sch, `{ hero { __typename name } }`)
	assert.Empty(t, errs)
}
