package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/viant/agentbridge/mcp"
	mcpconfig "github.com/viant/agentbridge/mcp/config"
	authctx "github.com/viant/agentbridge/mcp/context"
)

var (
	cfgPath  string
	tokenEnv string

	svcOnce sync.Once
	svcInst *mcp.Service
	svcErr  error
)

func setConfigPath(p string) { cfgPath = p }

func setTokenEnv(name string) { tokenEnv = name }

// commandContext returns the context sub-commands run under, carrying the
// remote bearer token when --token-env is set.
func commandContext() context.Context {
	return authctx.WithEnvToken(context.Background(), tokenEnv)
}

// serviceSingleton initialises an mcp.Service once per CLI invocation.
func serviceSingleton() (*mcp.Service, error) {
	svcOnce.Do(func() {
		ctx := commandContext()
		var cfg *mcpconfig.Config
		if cfgPath != "" {
			var err error
			if cfg, err = mcpconfig.Load(ctx, cfgPath); err != nil {
				svcErr = err
				return
			}
			if debug := os.Getenv("AGENTBRIDGE_DEBUG_CONFIG"); debug == "1" {
				_ = json.NewEncoder(os.Stderr).Encode(cfg)
			}
		}
		svcInst, svcErr = mcp.New(ctx, mcp.WithConfig(cfg))
	})
	return svcInst, svcErr
}

// printJSON writes value as indented JSON.
func printJSON(value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// printValue prints strings as-is and everything else as JSON.
func printValue(value interface{}) error {
	switch v := value.(type) {
	case string:
		fmt.Println(v)
		return nil
	case []byte:
		fmt.Println(string(v))
		return nil
	}
	return printJSON(value)
}
