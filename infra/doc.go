// Package infra contains technical adapters such as report writers,
// chart renderers and metrics exporters. These packages should depend
// only on the interfaces defined in the core packages.
package infra
