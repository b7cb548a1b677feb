package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFilters(t *testing.T) {
	t.Parallel()

	t.Run("equality filters carry no inequality field", func(t *testing.T) {
		t.Parallel()
		field, clauses, err := formatFilters([]QueryFilter{
			{Field: "CITY", Operator: "EQ", Value: "London"},
		})
		require.NoError(t, err)
		assert.Equal(t, "", field)
		require.Len(t, clauses, 1)
		assert.Equal(t, "city = ?", clauses[0].condition)
		assert.Equal(t, "London", clauses[0].value)
	})

	t.Run("single inequality field is reported", func(t *testing.T) {
		t.Parallel()
		field, clauses, err := formatFilters([]QueryFilter{
			{Field: "MONTH", Operator: "GT", Value: "3"},
			{Field: "CITY", Operator: "EQ", Value: "Paris"},
		})
		require.NoError(t, err)
		assert.Equal(t, "month", field)
		require.Len(t, clauses, 2)
		assert.Equal(t, "month > ?", clauses[0].condition)
		assert.Equal(t, 3, clauses[0].value)
	})

	t.Run("two inequality operators on one field are fine", func(t *testing.T) {
		t.Parallel()
		field, _, err := formatFilters([]QueryFilter{
			{Field: "MAX_ATTENDEES", Operator: "GT", Value: "10"},
			{Field: "MAX_ATTENDEES", Operator: "LTEQ", Value: "100"},
		})
		require.NoError(t, err)
		assert.Equal(t, "max_attendees", field)
	})

	t.Run("inequality on a second field is rejected", func(t *testing.T) {
		t.Parallel()
		_, _, err := formatFilters([]QueryFilter{
			{Field: "MONTH", Operator: "GT", Value: "3"},
			{Field: "MAX_ATTENDEES", Operator: "LT", Value: "100"},
		})
		assert.ErrorIs(t, err, ErrMultipleInequalityFields)
	})

	t.Run("unknown field is invalid", func(t *testing.T) {
		t.Parallel()
		_, _, err := formatFilters([]QueryFilter{
			{Field: "SPEAKER", Operator: "EQ", Value: "x"},
		})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("unknown operator is invalid", func(t *testing.T) {
		t.Parallel()
		_, _, err := formatFilters([]QueryFilter{
			{Field: "CITY", Operator: "LIKE", Value: "x"},
		})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("non-numeric value for numeric field is invalid", func(t *testing.T) {
		t.Parallel()
		_, _, err := formatFilters([]QueryFilter{
			{Field: "MONTH", Operator: "EQ", Value: "June"},
		})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("topics use array containment", func(t *testing.T) {
		t.Parallel()
		_, clauses, err := formatFilters([]QueryFilter{
			{Field: "TOPIC", Operator: "EQ", Value: "Go"},
		})
		require.NoError(t, err)
		require.Len(t, clauses, 1)
		assert.Equal(t, "? = ANY (topics)", clauses[0].condition)
	})

	t.Run("topics support NE but no ordering operators", func(t *testing.T) {
		t.Parallel()
		field, clauses, err := formatFilters([]QueryFilter{
			{Field: "TOPIC", Operator: "NE", Value: "Go"},
		})
		require.NoError(t, err)
		assert.Equal(t, "topics", field)
		assert.Equal(t, "NOT (? = ANY (topics))", clauses[0].condition)

		_, _, err = formatFilters([]QueryFilter{
			{Field: "TOPIC", Operator: "GT", Value: "Go"},
		})
		assert.ErrorIs(t, err, ErrInvalidFilter)
	})

	t.Run("no filters is a valid empty query", func(t *testing.T) {
		t.Parallel()
		field, clauses, err := formatFilters(nil)
		require.NoError(t, err)
		assert.Equal(t, "", field)
		assert.Empty(t, clauses)
	})
}
