// Package utils collects the configuration, logging, and environment plumbing
// shared by every command: the Viper-backed ConfigurationLoader, the zap
// LoggerFactory, the dotenv loader, and the context accessor for resolved
// configuration paths.
package utils
