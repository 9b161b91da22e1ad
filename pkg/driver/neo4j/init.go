package neo4j

import (
	"github.com/spidergraph/spider/pkg/driver"
)

func init() {
	_ = driver.Register(Name, New)
	_ = driver.RegisterAlias("bolt", Name)
	_ = driver.RegisterAlias("neo4j+s", Name)

	_ = driver.RegisterInfo(&driver.Info{
		Name:        Name,
		Backend:     "Neo4j",
		Description: "Bolt protocol driver backed by the official Neo4j Go driver",
		Aliases:     []string{"bolt", "neo4j+s"},
		ConfigSchema: map[string]interface{}{
			"uri": map[string]interface{}{
				"type":        "string",
				"required":    false,
				"description": "Full connection URI; overrides scheme, hostname and port",
			},
			"scheme": map[string]interface{}{
				"type":    "string",
				"default": defaultScheme,
			},
			"hostname": map[string]interface{}{
				"type":    "string",
				"default": defaultHost,
			},
			"port": map[string]interface{}{
				"type":    "integer",
				"default": defaultPort,
			},
			"username": map[string]interface{}{"type": "string"},
			"password": map[string]interface{}{"type": "string"},
			"database": map[string]interface{}{"type": "string"},
			"max_connection_pool_size": map[string]interface{}{
				"type":    "integer",
				"default": 100,
			},
		},
	})
}
