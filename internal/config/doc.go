// Package config holds the CLI configuration: solver defaults, the
// run database location and the report format, loadable from a YAML
// file discovered next to the working directory or in the XDG config
// directory.
package config
