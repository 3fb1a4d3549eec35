// Package config loads coal's optional config.toml. A missing file is not
// an error; every key has a default.
package config
