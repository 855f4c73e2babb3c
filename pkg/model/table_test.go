// pkg/model/table_test.go
package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnByName(t *testing.T) {
	table := NewTable([]Column{
		{Name: "age", Kind: KindNumber},
		{Name: "donor_code", Kind: KindText},
	})

	require.NotNil(t, table.ColumnByName("age"))
	// Lookup is case-insensitive
	require.NotNil(t, table.ColumnByName("Donor_Code"))
	assert.Nil(t, table.ColumnByName("missing"))
	assert.True(t, table.HasColumn("age"))
	assert.False(t, table.HasColumn("missing"))
}

func TestCloneDoesNotAlias(t *testing.T) {
	table := NewTable([]Column{{Name: "age", Kind: KindNumber}})
	table.Rows = []Row{{"age": float64(40)}}

	clone := table.Clone()
	clone.Rows[0]["age"] = float64(99)

	assert.Equal(t, float64(40), table.Rows[0]["age"])
}

func TestSelect(t *testing.T) {
	table := NewTable([]Column{{Name: "idx", Kind: KindNumber}})
	for i := 0; i < 5; i++ {
		table.Rows = append(table.Rows, Row{"idx": float64(i)})
	}

	subset := table.Select([]int{3, 1})
	require.Equal(t, 2, subset.Len())
	assert.Equal(t, float64(3), subset.Rows[0]["idx"])
	assert.Equal(t, float64(1), subset.Rows[1]["idx"])

	// Selected rows do not alias the source
	subset.Rows[0]["idx"] = float64(-1)
	assert.Equal(t, float64(3), table.Rows[3]["idx"])
}

func TestCategoryOrder(t *testing.T) {
	months := MonthCategory()

	assert.True(t, months.Ordered)
	assert.Len(t, months.Levels, 12)
	// Calendar order, not lexical: April < August < September
	assert.Less(t, months.Index("April"), months.Index("August"))
	assert.Less(t, months.Index("August"), months.Index("September"))
	assert.Equal(t, -1, months.Index("Octember"))
	assert.False(t, months.Contains("Octember"))
}

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(nil))
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing("NA"))
	assert.True(t, IsMissing("  "))
	assert.False(t, IsMissing(float64(0)))
	assert.False(t, IsMissing("0"))
}

func TestToFloat(t *testing.T) {
	got, err := ToFloat("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, got)

	got, err = ToFloat(float64(3))
	require.NoError(t, err)
	assert.Equal(t, float64(3), got)

	_, err = ToFloat("abc")
	assert.Error(t, err)
	_, err = ToFloat(nil)
	assert.Error(t, err)
}
