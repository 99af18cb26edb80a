package cmd

// Options is the root for the CLI. Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config   string `short:"f" long:"config" description:"service configuration YAML URL or path"`
	LogLevel string `long:"log-level" description:"debug, info, warn or error" default:"warn"`
	TokenEnv string `long:"token-env" description:"environment variable holding a bearer token for remote MCP endpoints"`

	Run          *RunCmd          `command:"run"          description:"Run a workflow"`
	AddRemote    *AddRemoteCmd    `command:"add-remote"   description:"Connect a remote MCP endpoint and list its tools"`
	ListTools    *ListToolsCmd    `command:"list-tools"   description:"List all registered tools"`
	ListActions  *ListActionsCmd  `command:"list-actions" description:"List fluxor services and their actions"`
	Action       *ActionCmd       `command:"action"       description:"Show detailed info about one fluxor action"`
	Tool         *ToolCmd         `command:"tool"         description:"Show detailed info about one MCP tool"`
	Exec         *ExecCmd         `command:"exec"         description:"Execute a tool"`
	Call         *CallCmd         `command:"call"         description:"Call a method of the default agent or a remote"`
	State        *StateCmd        `command:"state"        description:"Print the default agent state"`
	Capabilities *CapabilitiesCmd `command:"capabilities" description:"List callables and tools of the registered instances"`
	Serve        *ServeCmd        `command:"serve"        description:"Start an MCP server exposing the registered tools"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "run":
		o.Run = &RunCmd{}
	case "add-remote":
		o.AddRemote = &AddRemoteCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "list-actions":
		o.ListActions = &ListActionsCmd{}
	case "action":
		o.Action = &ActionCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "call":
		o.Call = &CallCmd{}
	case "state":
		o.State = &StateCmd{}
	case "capabilities":
		o.Capabilities = &CapabilitiesCmd{}
	case "serve":
		o.Serve = &ServeCmd{}
	}
}
