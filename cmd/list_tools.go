package cmd

import (
	"fmt"

	"github.com/viant/agentbridge/internal/conv"
)

// ListToolsCmd prints every registered tool, or those matching --pattern.
type ListToolsCmd struct {
	Pattern string `short:"p" long:"pattern" description:"tool name prefix; a trailing / selects whole services"`
	Exposed bool   `long:"exposed" description:"only tools published over MCP"`
}

func (c *ListToolsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	tools := svc.Tools()
	switch {
	case c.Exposed:
		tools = svc.ExposedTools()
	case c.Pattern != "":
		tools = svc.MatchTools(c.Pattern)
	}
	for _, t := range tools {
		fmt.Printf("%s\t%s\n", t.Metadata.Name, conv.Dereference(t.Metadata.Description))
	}
	return nil
}
