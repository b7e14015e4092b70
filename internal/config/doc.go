// Package config defines the format-agnostic settings model that a config file
// can provide, and the Loader interface implemented per file format.
//
// Concrete loaders live in separate packages (internal/hcl, internal/yamlcfg)
// and are handed to Load keyed by file extension.
package config
