package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// RunCmd starts a workflow and waits for its output. Initial state comes from
// --state, or from --input (any afs URL, "-" for stdin).
type RunCmd struct {
	Location   string `short:"l" long:"location" description:"workflow definition URL (YAML)" required:"yes"`
	InputURL   string `short:"i" long:"input"    description:"URL of a JSON document with the initial state (- for stdin)"`
	State      string `short:"s" long:"state"    description:"inline JSON object with the initial state"`
	TimeoutSec int    `long:"timeout" description:"seconds to wait for completion" default:"30"`
}

func (c *RunCmd) Execute(_ []string) error {
	if c.State != "" && c.InputURL != "" {
		return fmt.Errorf("-s/--state and -i/--input are mutually exclusive")
	}
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	rt := svc.WorkflowRuntime()
	ctx := commandContext()
	wf, err := rt.LoadWorkflow(ctx, c.Location)
	if err != nil {
		return fmt.Errorf("load workflow: %w", err)
	}

	initState := make(map[string]interface{})
	var data []byte
	switch {
	case c.State != "":
		data = []byte(strings.TrimSpace(c.State))
	case c.InputURL != "":
		if data, err = readInput(ctx, c.InputURL); err != nil {
			return err
		}
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &initState); err != nil {
			return fmt.Errorf("decode initial state: %w", err)
		}
	}

	process, wait, err := rt.StartProcess(ctx, wf, initState)
	if err != nil {
		return fmt.Errorf("start process: %w", err)
	}
	output, err := wait(ctx, time.Duration(c.TimeoutSec)*time.Second)
	if err != nil {
		return fmt.Errorf("wait for process: %w", err)
	}
	fmt.Fprintf(os.Stderr, "process %s completed\n", process.ID)
	return printJSON(output)
}
