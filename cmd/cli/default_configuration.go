package cli

import _ "embed"

// defaultConfigurationContent carries the configuration shipped with the
// binary. It seeds every run and is the byte source for --init.
//
//go:embed default_config.yaml
var defaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded default
// configuration together with its type identifier.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte(nil), defaultConfigurationContent...), configurationTypeConstant
}
