package graphql_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphql "github.com/zyxzen/graphqlite"
	"github.com/zyxzen/graphqlite/ast"
	"github.com/zyxzen/graphqlite/internal/parser"
	"github.com/zyxzen/graphqlite/schema"
)

func buildTelemetrySchema(t *testing.T) *schema.Schema {
	t.Helper()
	b := schema.New()
	query := b.Object("Query")
	query.Field("hero", schema.String).
		Argument("id", schema.NonNull(schema.ID)).
		Resolve(func(ctx context.Context, p schema.ResolveParams) (interface{}, error) {
			return "Luke", nil
		})
	sch, err := b.Build("Query", "", "")
	require.NoError(t, err)
	return sch
}

func TestSummarizeBasicQuery(t *testing.T) {
	doc, qerr := parser.Parse(`{ hero(id: "1000") }`)
	require.Nil(t, qerr)

	summary, err := graphql.Summarize(doc, "")
	require.NoError(t, err)

	assert.Equal(t, ast.Query, summary.Type)
	require.Len(t, summary.Fields, 1)
	assert.Equal(t, "hero", summary.Fields[0].Name)
	assert.Equal(t, map[string]string{"id": "1000"}, summary.Fields[0].Arguments)
}

func TestSummarizeRecordsVariableDefaults(t *testing.T) {
	doc, qerr := parser.Parse(`query Hero($id: ID = "2000") { hero(id: $id) }`)
	require.Nil(t, qerr)

	summary, err := graphql.Summarize(doc, "Hero")
	require.NoError(t, err)

	assert.Equal(t, "Hero", summary.Name)
	assert.Equal(t, map[string]string{"id": "2000"}, summary.Variables)
	require.Len(t, summary.Fields, 1)
	assert.Equal(t, map[string]string{"id": "$id"}, summary.Fields[0].Arguments)
}

func TestSummarizeUnknownOperationNameErrors(t *testing.T) {
	doc, qerr := parser.Parse(`{ hero(id: "1000") }`)
	require.Nil(t, qerr)

	_, err := graphql.Summarize(doc, "DoesNotExist")
	assert.Error(t, err)
}

func TestExecIncludesOperationSummaryInExtensions(t *testing.T) {
	sch := buildTelemetrySchema(t)
	s := graphql.New(sch)

	res := s.Exec(context.Background(), `{ hero(id: "1000") }`, "", nil)
	require.Empty(t, res.Errors)
	require.NotNil(t, res.Extensions)

	summary, ok := res.Extensions["operation"].(*graphql.LoggedOperation)
	require.True(t, ok)
	require.Len(t, summary.Fields, 1)
	assert.Equal(t, "hero", summary.Fields[0].Name)
}
