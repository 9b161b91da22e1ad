package config_test

import (
	"fmt"

	"github.com/spidergraph/spider/pkg/config"
)

// ExampleMerge shows caller values winning over the defaults template while
// missing sections are filled in.
func ExampleMerge() {
	supplied := config.Tree{
		"logging": 3,
		"errors":  map[string]interface{}{"all": "fatal"},
	}

	effective := config.Merge(supplied, config.DefaultTemplate.Tree())

	fmt.Println(effective["logging"])
	fmt.Println(effective["errors"])
	fmt.Println(effective["integrations"])

	// Output:
	// 3
	// map[all:fatal not_supported:silent]
	// map[events:events.emitter logger:logs.zap]
}
