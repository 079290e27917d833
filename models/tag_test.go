package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagUnmarshalBareString(t *testing.T) {
	var tag Tag
	require.NoError(t, json.Unmarshal([]byte(`"cursed"`), &tag))
	assert.Equal(t, "cursed", tag.Name)
	assert.Nil(t, tag.ID)
}

func TestTagUnmarshalObjectWithNumericID(t *testing.T) {
	var tag Tag
	require.NoError(t, json.Unmarshal([]byte(`{"id": 7, "name": "antique"}`), &tag))
	assert.Equal(t, "antique", tag.Name)
	require.NotNil(t, tag.ID)
	assert.Equal(t, 7, *tag.ID)
}

func TestTagUnmarshalObjectWithStringID(t *testing.T) {
	var tag Tag
	require.NoError(t, json.Unmarshal([]byte(`{"id": "12", "name": "haunted"}`), &tag))
	require.NotNil(t, tag.ID)
	assert.Equal(t, 12, *tag.ID)
}

func TestTagUnmarshalObjectWithoutID(t *testing.T) {
	var tag Tag
	require.NoError(t, json.Unmarshal([]byte(`{"name": "new"}`), &tag))
	assert.Equal(t, "new", tag.Name)
	assert.Nil(t, tag.ID)
}

func TestTagUnmarshalMixedList(t *testing.T) {
	var tags []Tag
	payload := `["cursed", {"id": 3, "name": "antique"}]`
	require.NoError(t, json.Unmarshal([]byte(payload), &tags))
	require.Len(t, tags, 2)
	assert.Equal(t, "cursed", tags[0].Name)
	assert.Equal(t, "antique", tags[1].Name)
	require.NotNil(t, tags[1].ID)
	assert.Equal(t, 3, *tags[1].ID)
}

func TestTagMarshalAlwaysStructured(t *testing.T) {
	id := 3
	data, err := json.Marshal([]Tag{{Name: "cursed"}, {ID: &id, Name: "antique"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"cursed"},{"id":3,"name":"antique"}]`, string(data))
}

func TestTagUnmarshalRejectsGarbage(t *testing.T) {
	var tag Tag
	assert.Error(t, json.Unmarshal([]byte(`42`), &tag))
}
