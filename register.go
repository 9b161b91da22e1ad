package spider

// Built-in drivers and integrations register themselves with the global
// registries.
import (
	_ "github.com/spidergraph/spider/pkg/driver/neo4j"
	_ "github.com/spidergraph/spider/pkg/driver/orientdb"
	_ "github.com/spidergraph/spider/pkg/integrations/cache"
	_ "github.com/spidergraph/spider/pkg/integrations/events"
	_ "github.com/spidergraph/spider/pkg/integrations/logs"
)
