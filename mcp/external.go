package mcp

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/agentbridge/bridge"
	"github.com/viant/agentbridge/internal/logging"
	"github.com/viant/agentbridge/mcp/tool"
	"github.com/viant/mcp"
	protocolclient "github.com/viant/mcp-protocol/client"
	mcpclient "github.com/viant/mcp/client"
	"gopkg.in/yaml.v3"
)

// registerRemotes connects the configured MCP endpoints. An endpoint that
// cannot be reached is logged and skipped so one bad remote does not take the
// service down.
func (s *Service) registerRemotes(ctx context.Context) error {
	remotes, err := s.loadRemoteConfig(ctx)
	if err != nil {
		return err
	}
	for _, options := range remotes {
		if err := s.AddRemote(ctx, options); err != nil {
			s.logger.Warn("remote skipped", "remote", options.Name, "error", err)
		}
	}
	return nil
}

// AddRemote connects an MCP endpoint and registers its tools as the fluxor
// service named after the endpoint.
func (s *Service) AddRemote(ctx context.Context, options *mcp.ClientOptions) error {
	if options == nil || options.Name == "" {
		return fmt.Errorf("remote: name was empty")
	}
	options.Init()
	cli, err := mcp.NewClient(s.ClientHandler(), options)
	if err != nil {
		return fmt.Errorf("create mcp client %q: %w", options.Name, err)
	}
	return s.AddRemoteClient(ctx, options.Name, cli)
}

// AddRemoteClient registers the tools of an already connected client.
func (s *Service) AddRemoteClient(ctx context.Context, name string, cli mcpclient.Interface) error {
	if _, ok := s.remotes.Get(name); ok {
		return &bridge.DuplicateNameError{Kind: "remote", Name: name, First: name, Second: name}
	}
	svc, err := tool.NewProxy(ctx, name, cli)
	if err != nil {
		return fmt.Errorf("load tools for %q: %w", name, err)
	}
	if err := s.Workflow.Service.Actions().Register(svc); err != nil {
		return err
	}
	// Remote tools are not agent operations, so the agent allow-list does not
	// apply to them.
	proxy := bridge.New(svc.Handle(), bridge.WithLogger(logging.For("remote").With("remote", name)))
	s.remotes.Set(name, &remote{service: svc, proxy: proxy})
	s.logger.Info("remote registered", "remote", name, "tools", len(svc.ToolNames()))
	return nil
}

// ClientHandler returns the handler for server-initiated requests on remote
// connections.
func (s *Service) ClientHandler() protocolclient.Handler {
	if s.client == nil {
		return &defaultClient{}
	}
	return s.client
}

// loadRemoteConfig resolves remote options either inline or referenced by URL.
func (s *Service) loadRemoteConfig(ctx context.Context) ([]*mcp.ClientOptions, error) {
	if s.config.Remotes == nil {
		return nil, nil
	}
	if len(s.config.Remotes.Items) > 0 {
		return s.config.Remotes.Items, nil
	}
	if s.config.Remotes.URL == "" {
		return nil, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, s.config.Remotes.URL)
	if err != nil {
		return nil, fmt.Errorf("download remotes config %q: %w", s.config.Remotes.URL, err)
	}
	var out []*mcp.ClientOptions
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse remotes config %q: %w", s.config.Remotes.URL, err)
	}
	for i, options := range out {
		if options == nil || options.Name == "" {
			return nil, fmt.Errorf("remotes config %q: item %d: name was empty", s.config.Remotes.URL, i)
		}
	}
	return out, nil
}
