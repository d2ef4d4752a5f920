// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func sampleItem() Item {
	var it Item
	it.Set("id", "x1")
	it.Set("name", "Zoe <3")
	it.Set("order", 4)
	return it
}

func TestItem_SetKeepsPosition(t *testing.T) {
	it := sampleItem()
	it.Set("id", "x2")

	assert.Equal(t, []string{"id", "name", "order"}, it.Keys())
	assert.Equal(t, 3, it.Len())
	v, ok := it.Get("id")
	assert.True(t, ok)
	assert.Equal(t, "x2", v)
	assert.False(t, it.Has("slug"))
}

func TestItem_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(sampleItem())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x1","name":"Zoe <3","order":4}`, string(data))

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(sampleItem()))
	assert.Equal(t, `{"id":"x1","name":"Zoe <3","order":4}`+"\n", buf.String(), "keys keep insertion order")
}

func TestItem_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Item{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestItem_MarshalYAML(t *testing.T) {
	data, err := yaml.Marshal(sampleItem())
	require.NoError(t, err)
	assert.Equal(t, "id: x1\nname: Zoe <3\norder: 4\n", string(data))
}

func TestRunReport(t *testing.T) {
	r := RunReport{
		Processed: []ProcessedFile{{Collection: "schools", Items: 2, Output: "data/cms-schools.json"}},
	}
	assert.Equal(t, 1, r.Total())
	assert.False(t, r.HasFailures())

	r.Failed = append(r.Failed, FailedFile{Collection: "teachers", Kind: "row", Error: "bad order"})
	assert.Equal(t, 2, r.Total())
	assert.True(t, r.HasFailures())
}
