// Package cli assembles the helpsync command tree. The Application type owns
// the Cobra root command, layered configuration, and the zap logger shared by
// every subcommand; Execute builds one and runs it against os.Args.
package cli
