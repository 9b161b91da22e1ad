// Package spider turns a declarative configuration into a ready connection
// to a graph database backend.
//
// A configuration names one or more connections, optional integrations
// (event dispatcher, logger, cache) and general options:
//
//	cfg := config.Tree{
//		"connections": map[string]interface{}{
//			"default": "neo",
//			"neo": map[string]interface{}{
//				"driver":   "neo4j",
//				"hostname": "localhost",
//				"username": "neo4j",
//				"password": "secret",
//			},
//			"orient": map[string]interface{}{"driver": "orientdb", "hostname": "localhost"},
//		},
//		"errors": map[string]interface{}{"not_supported": "quiet"},
//	}
//
//	s, err := spider.New(cfg, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close(ctx)
//
// The configuration is merged over a defaults template first (see
// config.Merge), so integrations and the error policy always have values.
// Construction performs no network I/O.
//
// # Global setup
//
// Setup stores a process-wide configuration that Make uses to build new
// instances:
//
//	spider.Setup(cfg)
//	s, err := spider.Make("orient")
//
// The global state is guarded against data races but Setup and Make are
// not atomic as a pair. Callers that change the global configuration
// concurrently with Make must serialise those calls themselves, or pass
// configuration to New directly.
//
// # Integrations
//
// Integrations are resolved lazily by name. A configuration value may be a
// registered type identifier (a string), an ioc.Func factory, a ready
// instance, or an ioc.Delegate wrapping another ioc.Container that takes
// over resolution. See package ioc.
package spider
