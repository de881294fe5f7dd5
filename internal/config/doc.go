// Package config provides the settings of a telscan run: CLI-level options
// with their defaults, and the optional .telscan file holding per-site
// reference numbers, headers and cookies.
package config
