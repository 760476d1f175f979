package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	t.Run("TrimsAndDropsEmpties", func(t *testing.T) {
		assert.Equal(t, []string{"Go", "TypeScript", "Postgres"}, ParseCSV(" Go, TypeScript ,, Postgres , "))
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, ParseCSV(""))
		assert.Empty(t, ParseCSV(" , , "))
	})

	t.Run("SingleItem", func(t *testing.T) {
		assert.Equal(t, []string{"Go"}, ParseCSV("Go"))
	})
}

func TestJoinCSV(t *testing.T) {
	assert.Equal(t, "Go, Postgres", JoinCSV([]string{"Go", "Postgres"}))
	assert.Equal(t, "", JoinCSV(nil))
}

func TestParseKeyValueLines(t *testing.T) {
	t.Run("BasicLines", func(t *testing.T) {
		pairs := ParseKeyValueLines("Role|Lead Engineer\nTeam|4 people\nDuration|6 months")
		assert.Equal(t, []KeyValue{
			{Key: "Role", Value: "Lead Engineer"},
			{Key: "Team", Value: "4 people"},
			{Key: "Duration", Value: "6 months"},
		}, pairs)
	})

	t.Run("DropsMalformedLines", func(t *testing.T) {
		pairs := ParseKeyValueLines("no separator here\n|empty key\nEmptyValue|\nRole|Lead\n\n")
		assert.Equal(t, []KeyValue{{Key: "Role", Value: "Lead"}}, pairs)
	})

	t.Run("ValueMayContainSeparator", func(t *testing.T) {
		pairs := ParseKeyValueLines("Link|https://example.com|more")
		assert.Equal(t, []KeyValue{{Key: "Link", Value: "https://example.com|more"}}, pairs)
	})

	t.Run("PreservesOrder", func(t *testing.T) {
		pairs := ParseKeyValueLines("b|2\na|1\nc|3")
		assert.Equal(t, []KeyValue{
			{Key: "b", Value: "2"},
			{Key: "a", Value: "1"},
			{Key: "c", Value: "3"},
		}, pairs)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Empty(t, ParseKeyValueLines(""))
	})
}
