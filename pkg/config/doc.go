// Package config provides configuration management for docfilter.
//
// Configuration is loaded from a YAML file, completed with defaults and
// optionally overridden from the environment:
//
//	cfg, err := config.LoadConfig("docfilter.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("docfilter.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention DOCFILTER_SECTION_FIELD:
//
//   - DOCFILTER_SCANNER_WORKERS overrides scanner.workers
//   - DOCFILTER_SOURCE_PATH overrides source.path
//   - DOCFILTER_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  max_depth: 16
//	scanner:
//	  workers: 4
//	  limit: 100
//	source:
//	  type: sqlite
//	  path: data/people.db
//	  table: people
//	watch:
//	  debounce: 250ms
//	  schedule: "*/5 * * * *"
//	telemetry:
//	  logging:
//	    level: debug
//	    format: json
//	  metrics:
//	    enabled: true
//	    address: ":9090"
package config
