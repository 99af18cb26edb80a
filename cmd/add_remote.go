package cmd

import (
	"fmt"

	mcp "github.com/viant/mcp"
)

// AddRemoteCmd connects a remote MCP endpoint, registers its tools as a fluxor
// service and prints what was imported.
type AddRemoteCmd struct {
	Name    string `short:"n" long:"name"    description:"identifier for the remote endpoint" required:"yes"`
	Address string `short:"a" long:"address" description:"HTTP address of the remote MCP server" required:"yes"`
	Version string `short:"v" long:"version" description:"expected protocol version (optional)"`
}

func (c *AddRemoteCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	options := &mcp.ClientOptions{
		Name:    c.Name,
		Version: c.Version,
		Transport: mcp.ClientTransport{
			Type:                "sse",
			ClientTransportHTTP: mcp.ClientTransportHTTP{URL: c.Address},
		},
	}
	if err := svc.AddRemote(commandContext(), options); err != nil {
		return err
	}
	fmt.Printf("imported tools from %s (%s)\n", c.Name, c.Address)
	for _, entry := range svc.MatchTools(c.Name + "/") {
		fmt.Printf("  %s\n", entry.Metadata.Name)
	}
	return nil
}
