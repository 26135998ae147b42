// Package openapi exposes the public contracts for the loader and parser stages
// that turn a form definition document (OpenAPI 3) into operation wrappers.
// Implementations live under internal/openapi so kin-openapi stays hidden from
// consumers.
package openapi
