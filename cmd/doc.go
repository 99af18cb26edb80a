// Package cmd implements the agentbridge command-line interface. Each file
// registers one sub-command; configuration loading and service
// initialisation shared by all commands live in shared.go.
package cmd
