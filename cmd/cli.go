package cmd

import (
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/viant/agentbridge/internal/logging"
)

// Run is the entry point for the CLI, kept outside the main package so it can
// be driven from tests.
func Run(args []string) {
	setConfigPath(extractFlag(args, "-f", "--config"))
	setTokenEnv(extractFlag(args, "", "--token-env"))
	logging.Init(logging.ParseLevel(extractFlag(args, "", "--log-level")), os.Stderr)

	opts := &Options{}
	var first string
	if len(args) > 0 {
		first = args[0]
	}
	opts.Init(first)

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		log.Fatalf("%v", err)
	}
}

// extractFlag finds a global option in the raw arguments before full flag
// parsing, so the service can be configured before a sub-command runs.
func extractFlag(args []string, short, long string) string {
	for i, a := range args {
		switch {
		case a == long || (short != "" && a == short):
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, long+"="):
			return strings.TrimPrefix(a, long+"=")
		}
	}
	return ""
}
