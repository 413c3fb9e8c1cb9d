package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

// Маршруты /api/v1, которые регистрирует router.Init. /healthz и /swagger лежат вне BasePath и не описываются.
var routes = map[string][]string{
	"/products":       {"get", "post"},
	"/products/new":   {"get"},
	"/products/types": {"get"},
	"/products/{id}":  {"get"},
}

func TestDocDescribesRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/api/v1", doc.BasePath)
	assert.Len(t, doc.Paths, len(routes))

	for path, methods := range routes {
		ops, ok := doc.Paths[path]
		if !assert.True(t, ok, "path %s is not documented", path) {
			continue
		}
		assert.Len(t, ops, len(methods), "path %s", path)
		for _, method := range methods {
			assert.Contains(t, ops, method, "path %s", path)
		}
	}
}
