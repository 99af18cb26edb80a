package cmd

import (
	"encoding/json"
	"fmt"
)

// CallCmd invokes a method through the default agent proxy or, with --remote,
// through the proxy of a connected remote. Method names may use either the
// local (snake_case) or remote (camelCase) convention.
type CallCmd struct {
	Remote string `short:"r" long:"remote" description:"remote name; the default agent is used when empty"`
	JSON   bool   `long:"json" description:"print result as JSON"`
	Args   struct {
		Method string   `positional-arg-name:"method" required:"yes"`
		Values []string `positional-arg-name:"args"`
	} `positional-args:"yes"`
}

func (c *CallCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	args := make([]any, 0, len(c.Args.Values))
	for _, raw := range c.Args.Values {
		args = append(args, parseArg(raw))
	}
	ctx := commandContext()
	var out any
	if c.Remote == "" {
		if svc.Agent() == nil {
			return fmt.Errorf("no agent configured")
		}
		out, err = svc.Agent().Call(ctx, c.Args.Method, args...)
	} else {
		proxy, rErr := svc.Remote(c.Remote)
		if rErr != nil {
			return rErr
		}
		out, err = proxy.Call(ctx, c.Args.Method, args...)
	}
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(out)
	}
	return printValue(out)
}

// parseArg decodes a JSON argument, falling back to the raw string.
func parseArg(raw string) any {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return raw
	}
	return value
}
