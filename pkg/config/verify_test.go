package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(Default()))
	})

	t.Run("empty config is valid", func(t *testing.T) {
		require.NoError(t, VerifyAgainstEmbeddedSchema(&Config{}))
	})

	t.Run("explicit projects are valid", func(t *testing.T) {
		cfg := Default()
		cfg.Crawler.Projects = []string{"en", "ja"}
		require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
	})
}

func TestVerify(t *testing.T) {
	base := `{
	  "$ref": "#/$defs/Config",
	  "$defs": {
	    "Config": {
	      "type": "object",
	      "additionalProperties": false,
	      "required": ["server"],
	      "properties": {"server": {"$ref": "#/$defs/ServerConfig"}}
	    },
	    "ServerConfig": {
	      "type": "object",
	      "properties": {"listen": {"type": "string"}, "timeout": {"type": "integer"}}
	    }
	  }
	}`

	tests := []struct {
		name   string
		schema string
		errMsg string
	}{
		{name: "unknown sections", schema: base, errMsg: "Additional property client is not allowed"},
		{name: "bad schema", schema: "{", errMsg: "parse schema"},
		{
			name:   "missing required",
			schema: `{"type": "object", "required": ["nope"], "properties": {}}`,
			errMsg: "nope is required",
		},
		{
			name: "wrong type",
			schema: `{"type": "object", "properties": {
				"server": {"type": "object", "properties": {"listen": {"type": "integer"}}}
			}}`,
			errMsg: "server.listen: Invalid type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := verify(Default(), []byte(tt.schema))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("all errors reported", func(t *testing.T) {
		err := verify(Default(), []byte(`{"type": "object", "required": ["a", "b"]}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a is required")
		assert.Contains(t, err.Error(), "b is required")
	})

	t.Run("no properties means anything goes", func(t *testing.T) {
		require.NoError(t, verify(Default(), []byte(`{"type": "object"}`)))
	})
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema()
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"Config", "ServerConfig", "DatabaseConfig", "CrawlerConfig", "ClientConfig"} {
		assert.Contains(t, defs, name)
	}

	// generated schema accepts the defaults the same way the embedded one does
	require.NoError(t, verify(Default(), data))
}
