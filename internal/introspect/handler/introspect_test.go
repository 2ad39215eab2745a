package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJavaClassName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"person", "Person"},
		{"person_details", "PersonDetails"},
		{"ORDER_ITEMS", "ORDERITEMS"},
		{"already-kebab", "AlreadyKebab"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toJavaClassName(tt.in), "table %q", tt.in)
	}
}

func TestToJavaFieldName(t *testing.T) {
	assert.Equal(t, "firstName", toJavaFieldName("first_name"))
	assert.Equal(t, "id", toJavaFieldName("id"))
}

func TestLookupTypeFallsBackToObject(t *testing.T) {
	assert.Equal(t, sqlType{"BIGINT", "Long"}, lookupType("BIGINT"))
	assert.Equal(t, sqlType{"OTHER", "Object"}, lookupType("geometry"))
}

func personTable() TableInfo {
	return TableInfo{
		Schema: "shop",
		Name:   "person_details",
		Columns: []ColumnInfo{
			{Name: "id", DataType: "bigint", PrimaryKey: true},
			{Name: "first_name", DataType: "varchar"},
			{Name: "last_name", DataType: "varchar"},
			{Name: "born_on", DataType: "date", Nullable: true},
		},
		Indexes: []IndexInfo{
			{Name: "idx_last_name", Columns: []IndexColumn{{Name: "last_name"}}},
			{Name: "idx_full_name", Columns: []IndexColumn{
				{Name: "last_name"},
				{Name: "first_name", Descending: true},
			}},
		},
	}
}

func TestProposeMetadataSingleColumnKey(t *testing.T) {
	table := personTable()

	meta := proposeMetadata(&table, "model")

	assert.Equal(t, "PersonDetails", meta.Name)
	assert.Equal(t, "shop", meta.DatabaseSchema)
	assert.Equal(t, "person_details", meta.DatabaseTable)
	assert.Equal(t, "Long", meta.KeyType)
	assert.Equal(t, "model.PersonDetails", meta.ValueType)

	require.Len(t, meta.KeyFields, 1)
	assert.Equal(t, "id", meta.KeyFields[0].DatabaseName)
	assert.Equal(t, "BIGINT", meta.KeyFields[0].DatabaseType)
	assert.Equal(t, "id", meta.KeyFields[0].JavaName)
	assert.Equal(t, "Long", meta.KeyFields[0].JavaType)

	require.Len(t, meta.ValueFields, 3)
	assert.Equal(t, "firstName", meta.ValueFields[0].JavaName)
	assert.Equal(t, "java.sql.Date", meta.ValueFields[2].JavaType)

	// every column is queryable
	require.Len(t, meta.QueryFields, 4)
}

func TestProposeMetadataCompositeKeyGetsKeyClass(t *testing.T) {
	table := TableInfo{
		Schema: "shop",
		Name:   "order_items",
		Columns: []ColumnInfo{
			{Name: "order_id", DataType: "bigint", PrimaryKey: true},
			{Name: "item_id", DataType: "bigint", PrimaryKey: true},
			{Name: "quantity", DataType: "int"},
		},
	}

	meta := proposeMetadata(&table, "model")

	assert.Equal(t, "model.OrderItemsKey", meta.KeyType)
	assert.Len(t, meta.KeyFields, 2)
}

func TestProposeMetadataIndexesBecomeQueryIndexes(t *testing.T) {
	table := personTable()

	meta := proposeMetadata(&table, "model")

	require.Len(t, meta.AscendingFields, 1)
	assert.Equal(t, "lastName", meta.AscendingFields[0].Name)
	assert.Equal(t, "String", meta.AscendingFields[0].ClassName)

	require.Len(t, meta.Groups, 1)
	assert.Equal(t, "idx_full_name", meta.Groups[0].Name)
	require.Len(t, meta.Groups[0].Fields, 2)
	assert.False(t, meta.Groups[0].Fields[0].Descending)
	assert.True(t, meta.Groups[0].Fields[1].Descending)
}

func TestProposeMetadataQualifiesWithPackage(t *testing.T) {
	table := personTable()
	meta := proposeMetadata(&table, "com.example.domain")
	assert.Equal(t, "com.example.domain.PersonDetails", meta.ValueType)
}
