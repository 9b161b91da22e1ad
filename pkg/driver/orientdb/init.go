package orientdb

import (
	"github.com/spidergraph/spider/pkg/driver"
)

func init() {
	_ = driver.Register(Name, New)
	_ = driver.RegisterAlias("orient", Name)

	_ = driver.RegisterInfo(&driver.Info{
		Name:        Name,
		Backend:     "OrientDB",
		Description: "OrientDB binary protocol endpoint",
		Aliases:     []string{"orient"},
		ConfigSchema: map[string]interface{}{
			"hostname": map[string]interface{}{
				"type":    "string",
				"default": defaultHost,
			},
			"port": map[string]interface{}{
				"type":    "integer",
				"default": defaultPort,
			},
			"database": map[string]interface{}{
				"type":     "string",
				"required": true,
			},
			"username": map[string]interface{}{"type": "string"},
			"password": map[string]interface{}{"type": "string"},
		},
	})
}
