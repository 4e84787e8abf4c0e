// Package domain contains the core domain model for predprobe.
//
// The domain is transport- and persistence-agnostic: it does not depend on
// YAML parsing, net/http, database/sql or Redis. Infra adapters map
// into/from these types.
package domain
