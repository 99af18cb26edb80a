package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/viant/mcp"
)

// Version is reported to MCP clients.
var Version = "0.1.0"

// ServeCmd exposes the registered tools over MCP. By default it starts the
// HTTP server configured in the service config; --stdio serves a single
// client over stdin/stdout instead.
type ServeCmd struct {
	Stdio bool `long:"stdio" description:"serve over stdin/stdout"`
}

func (c *ServeCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	ctx := commandContext()
	if c.Stdio {
		srv, err := svc.MCPServer(ctx, "agentbridge", Version)
		if err != nil {
			return err
		}
		return server.ServeStdio(srv)
	}

	var srvOpts *mcp.ServerOptions
	if cfg := svc.Config(); cfg != nil {
		srvOpts = cfg.Server
	}
	mcpServer, err := mcp.NewServer(svc.NewHandler, srvOpts)
	if err != nil {
		return err
	}
	httpSrv := mcpServer.HTTP(ctx, "")
	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	fmt.Fprintf(os.Stderr, "MCP server listening on %s\n", httpSrv.Addr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-sigs:
	}
	fmt.Fprintln(os.Stderr, "shutting down")
	if err := httpSrv.Shutdown(context.Background()); err != nil {
		return err
	}
	return svc.Shutdown(context.Background())
}
