// Package file implements TOML-backed application settings stored in
// the wrench config directory.
package file
