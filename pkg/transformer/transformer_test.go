// pkg/transformer/transformer_test.go
package transformer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/advancementlab/donorpipe/pkg/model"
)

func givingTable(values []interface{}) *model.Table {
	t := model.NewTable([]model.Column{{Name: "lifetime_giving", Kind: model.KindNumber}})
	for _, v := range values {
		t.Rows = append(t.Rows, model.Row{"lifetime_giving": v})
	}
	return t
}

func TestLogTransform(t *testing.T) {
	tr, err := NewTransformer(zap.NewNop())
	require.NoError(t, err)

	input := givingTable([]interface{}{float64(0), float64(99), float64(10000), nil})

	out, err := tr.LogTransform(input, "lifetime_giving")
	require.NoError(t, err)

	assert.InDelta(t, 0, out.Rows[0]["lifetime_giving"].(float64), 1e-12)
	assert.InDelta(t, math.Log(100), out.Rows[1]["lifetime_giving"].(float64), 1e-12)
	assert.InDelta(t, math.Log(10001), out.Rows[2]["lifetime_giving"].(float64), 1e-12)
	assert.Nil(t, out.Rows[3]["lifetime_giving"])

	// Input table is untouched
	assert.Equal(t, float64(99), input.Rows[1]["lifetime_giving"])
}

func TestLogTransformRoundTrip(t *testing.T) {
	tr, err := NewTransformer(zap.NewNop())
	require.NoError(t, err)

	values := []interface{}{float64(0), float64(1), float64(250.75), float64(1e6)}
	out, err := tr.LogTransform(givingTable(values), "lifetime_giving")
	require.NoError(t, err)

	// exp(x) - 1 inverts the transform within floating-point tolerance
	for i, v := range values {
		got := math.Expm1(out.Rows[i]["lifetime_giving"].(float64))
		assert.InDelta(t, v.(float64), got, 1e-6)
	}
}

func TestLogTransformDomainError(t *testing.T) {
	tr, err := NewTransformer(zap.NewNop())
	require.NoError(t, err)

	_, err = tr.LogTransform(givingTable([]interface{}{float64(5), float64(-2)}), "lifetime_giving")

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "lifetime_giving", domainErr.Column)
	assert.Equal(t, float64(-2), domainErr.Value)
}

func TestLogTransformMissingColumn(t *testing.T) {
	tr, err := NewTransformer(zap.NewNop())
	require.NoError(t, err)

	_, err = tr.LogTransform(givingTable(nil), "no_such_column")

	var schemaErr *model.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}
