package bridge

// Record is an initialization record passed to a remote factory.
type Record interface {
	Record() map[string]any
}

// AgentOptions is the createAgent record: {name, initialState?, props?}.
type AgentOptions struct {
	Name         string         `yaml:"name" json:"name"`
	InitialState map[string]any `yaml:"initialState,omitempty" json:"initialState,omitempty"`
	Props        map[string]any `yaml:"props,omitempty" json:"props,omitempty"`
}

func (o AgentOptions) Record() map[string]any {
	record := map[string]any{"name": o.Name}
	if o.InitialState != nil {
		record["initialState"] = o.InitialState
	}
	if o.Props != nil {
		record["props"] = o.Props
	}
	return record
}

// McpAgentOptions is the createMcpAgent record: {state, env?, ctx?}. A nil
// state is sent as an empty record.
type McpAgentOptions struct {
	State map[string]any
	Env   any
	Ctx   any
}

func (o McpAgentOptions) Record() map[string]any {
	state := o.State
	if state == nil {
		state = map[string]any{}
	}
	record := map[string]any{"state": state}
	if o.Env != nil {
		record["env"] = o.Env
	}
	if o.Ctx != nil {
		record["ctx"] = o.Ctx
	}
	return record
}

// Params is a free-form record, used for workflow creation.
type Params map[string]any

func (p Params) Record() map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return p
}
