package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/viant/afs"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/fluxor"
	"github.com/viant/fluxor/model/types"
	"github.com/viant/x"
	"gopkg.in/yaml.v3"

	mcp "github.com/viant/mcp"
)

// Group holds either inline items or a URL of a YAML list of items.
type Group[T any] struct {
	URL   string `yaml:"url,omitempty" json:"url,omitempty" short:"u" long:"url" description:"url"`
	Items []T    `yaml:"items,omitempty" json:"items,omitempty" short:"i" long:"items" description:"items"`
}

// Runtime configures the embedded JS runtime and the proxies built over it.
type Runtime struct {
	Scripts []string             `yaml:"scripts,omitempty" json:"scripts,omitempty"`
	Global  string               `yaml:"global,omitempty" json:"global,omitempty"`
	Policy  string               `yaml:"policy,omitempty" json:"policy,omitempty" validate:"omitempty,oneof=passthrough pass-through strict"`
	Allow   []string             `yaml:"allow,omitempty" json:"allow,omitempty" validate:"dive,required"`
	Agent   *bridge.AgentOptions `yaml:"agent,omitempty" json:"agent,omitempty"`
}

type Config struct {
	Server   *mcp.ServerOptions         `yaml:"server,omitempty" json:"server,omitempty"`
	Runtime  *Runtime                   `yaml:"runtime,omitempty" json:"runtime,omitempty"`
	Remotes  *Group[*mcp.ClientOptions] `yaml:"remotes,omitempty" json:"remotes,omitempty"`
	Builtins []string                   `yaml:"builtins,omitempty" json:"builtins,omitempty"`
	Expose   []string                   `yaml:"expose,omitempty" json:"expose,omitempty"`

	Options        []fluxor.Option `yaml:"-" json:"-"`
	Extensions     []types.Service `yaml:"-" json:"-"`
	ExtensionTypes []*x.Type       `yaml:"-" json:"-"`
}

var validate = validator.New()

// Load downloads and parses the configuration at URL; any afs supported
// scheme works, plain paths included.
func Load(ctx context.Context, URL string) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", URL, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", URL, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Runtime != nil {
		if err := validate.Struct(c.Runtime); err != nil {
			return fmt.Errorf("invalid runtime: %w", err)
		}
		policy, err := bridge.ParsePolicy(c.Runtime.Policy)
		if err != nil {
			return err
		}
		if len(c.Runtime.Allow) > 0 && policy != bridge.Strict {
			return errors.New("runtime.allow requires the strict policy")
		}
		if agent := c.Runtime.Agent; agent != nil && strings.TrimSpace(agent.Name) == "" {
			return errors.New("runtime.agent: name was empty")
		}
	}
	if c.Remotes != nil {
		for i, remote := range c.Remotes.Items {
			if remote == nil || remote.Name == "" {
				return fmt.Errorf("remotes[%d]: name was empty", i)
			}
		}
	}
	return nil
}

// Policy returns the configured proxy policy and extra allowed names.
func (c *Config) Policy() (bridge.Policy, []string) {
	if c.Runtime == nil {
		return bridge.PassThrough, nil
	}
	policy, _ := bridge.ParsePolicy(c.Runtime.Policy)
	return policy, c.Runtime.Allow
}

// Global returns the SDK global name, empty for the default.
func (c *Config) Global() string {
	if c.Runtime == nil {
		return ""
	}
	return c.Runtime.Global
}

// Scripts returns the JS script URLs.
func (c *Config) Scripts() []string {
	if c.Runtime == nil {
		return nil
	}
	return c.Runtime.Scripts
}

// Agent returns the default agent options, nil when none is configured.
func (c *Config) Agent() *bridge.AgentOptions {
	if c.Runtime == nil {
		return nil
	}
	return c.Runtime.Agent
}
