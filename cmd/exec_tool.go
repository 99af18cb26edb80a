package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ExecCmd executes a tool. Arguments come inline via -i/--input or from a
// JSON document via -d/--data (any afs URL, "-" for stdin).
type ExecCmd struct {
	Name       string `short:"n" long:"name" positional-arg-name:"tool" description:"tool name (service-tool or service/tool)" required:"yes"`
	Inline     string `short:"i" long:"input" description:"inline JSON arguments (object)"`
	Data       string `short:"d" long:"data" description:"URL of a JSON arguments document (use - for stdin)"`
	Workflow   bool   `short:"w" long:"workflow" description:"schedule through the fluxor runtime instead of calling in-process"`
	TimeoutSec int    `long:"timeout" description:"seconds to wait for completion" default:"120"`
	JSON       bool   `long:"json" description:"print result as JSON"`
}

func (c *ExecCmd) Execute(_ []string) error {
	if c.Inline != "" && c.Data != "" {
		return fmt.Errorf("-i/--input and -d/--data are mutually exclusive")
	}
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	ctx := commandContext()
	args, err := c.arguments(ctx)
	if err != nil {
		return err
	}
	timeout := time.Duration(c.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	var out interface{}
	if c.Workflow {
		out, err = svc.ExecuteTool(ctx, c.Name, args, timeout)
	} else {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		out, err = svc.CallTool(callCtx, c.Name, args)
	}
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(out)
	}
	return printValue(out)
}

func (c *ExecCmd) arguments(ctx context.Context) (map[string]interface{}, error) {
	var args map[string]interface{}
	switch {
	case c.Inline != "":
		if err := json.Unmarshal([]byte(c.Inline), &args); err != nil {
			return nil, fmt.Errorf("invalid inline JSON: %w", err)
		}
	case c.Data != "":
		data, err := readInput(ctx, c.Data)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &args); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	}
	return args, nil
}
