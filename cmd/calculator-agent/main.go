// Tencent is pleased to support the open source community by making a2a-calculator available.
//
// Copyright (C) 2025 THL A29 Limited, a Tencent company.  All rights reserved.
//
// a2a-calculator is licensed under the Apache License Version 2.0.

// Command calculator-agent serves the count-letters agent and talks to it.
//
// Usage:
//
//	calculator-agent serve --addr :8000
//	calculator-agent ask --url http://localhost:8000 "How many r's in strawberry?"
//	calculator-agent card --url http://localhost:8000
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/a2a-calculator/agent"
	"trpc.group/trpc-go/a2a-calculator/auth"
	"trpc.group/trpc-go/a2a-calculator/client"
	"trpc.group/trpc-go/a2a-calculator/internal/config"
	"trpc.group/trpc-go/a2a-calculator/log"
	"trpc.group/trpc-go/a2a-calculator/server"
)

const shutdownTimeout = 10 * time.Second

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Serve   ServeCmd   `cmd:"" help:"Start the calculator agent server."`
	Ask     AskCmd     `cmd:"" help:"Ask a running agent a question."`
	Card    CardCmd    `cmd:"" help:"Fetch and print the agent card."`

	EnvFile   string `name:"env-file" help:"Extra .env file to load." type:"path"`
	LogLevel  string `name:"log-level" env:"LOG_LEVEL" help:"Log level (debug, info, warn, error)." default:"info"`
	LogFormat string `name:"log-format" env:"LOG_FORMAT" help:"Log format (console, json)." default:"console"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// Run prints the module version.
func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintf(out, "calculator-agent version %s\n", version())
	return err
}

func version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// ServeCmd starts the server.
type ServeCmd struct {
	config.Config `embed:""`
}

// Run serves until SIGINT or SIGTERM.
func (c *ServeCmd) Run() error {
	if err := c.Validate(); err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := c.newServer(ctx)
	if err != nil {
		return err
	}
	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", c.Addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Serve(ln)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return g.Wait()
}

func (c *ServeCmd) newServer(ctx context.Context) (*server.Server, error) {
	openaiClient, err := agent.NewOpenAIClient(agent.ClientConfig{
		Endpoint:   c.AI.Endpoint,
		APIKey:     c.AI.APIKey,
		APIVersion: c.AI.APIVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}
	calculator, err := agent.NewCalculator(agent.CalculatorOptions{
		Client:        openaiClient,
		Model:         c.AI.Model,
		PollInterval:  c.AI.PollInterval,
		MaxToolRounds: c.AI.MaxToolRounds,
	})
	if err != nil {
		return nil, fmt.Errorf("create calculator agent: %w", err)
	}
	greeter, err := agent.NewGreeter(openaiClient, c.AI.Model)
	if err != nil {
		return nil, fmt.Errorf("create greeter: %w", err)
	}

	opts := []server.Option{
		server.WithGreeter(greeter),
		server.WithCORSEnabled(c.CORS),
		server.WithReadTimeout(c.ReadTimeout),
		server.WithWriteTimeout(c.WriteTimeout),
		server.WithIdleTimeout(c.IdleTimeout),
	}
	provider, err := newAuthProvider(ctx, c.Auth)
	if err != nil {
		return nil, err
	}
	if provider != nil {
		log.Infof("Authentication enabled (modes %s)", strings.Join(c.Auth.EnabledModes(), ","))
		opts = append(opts, server.WithAuthProvider(provider))
	}
	if c.Metrics {
		opts = append(opts, server.WithMetrics(newRegistry()))
	}
	return server.NewServer(calculator, opts...)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// newAuthProvider returns nil when authentication is disabled. Several modes
// are chained and the first one that accepts a request wins.
func newAuthProvider(ctx context.Context, cfg config.AuthConfig) (auth.Provider, error) {
	modes := cfg.EnabledModes()
	providers := make([]auth.Provider, 0, len(modes))
	for _, mode := range modes {
		provider, err := newModeProvider(ctx, mode, cfg)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}
	switch len(providers) {
	case 0:
		return nil, nil
	case 1:
		return providers[0], nil
	default:
		return auth.NewChainAuthProvider(providers...), nil
	}
}

func newModeProvider(ctx context.Context, mode string, cfg config.AuthConfig) (auth.Provider, error) {
	switch mode {
	case config.AuthAPIKey:
		return auth.NewAPIKeyAuthProvider(cfg.APIKeyMap(), cfg.APIHeader), nil
	case config.AuthJWT:
		return auth.NewJWTAuthProvider([]byte(cfg.JWTSecret), cfg.Audience, cfg.Issuer, 0), nil
	case config.AuthJWKS:
		provider, err := auth.NewJWKSAuthProvider(ctx, cfg.JWKSURL, cfg.Issuer, cfg.Audience)
		if err != nil {
			return nil, fmt.Errorf("create jwks provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

// ClientFlags are shared by the commands that call a running agent.
type ClientFlags struct {
	URL       string        `name:"url" env:"AGENT_URL" default:"http://localhost:8000" help:"Agent server base URL."`
	Timeout   time.Duration `name:"timeout" default:"2m" help:"Request timeout."`
	APIKey    string        `name:"api-key" env:"AGENT_API_KEY" help:"API key sent in X-API-Key."`
	JWTSecret string        `name:"jwt-secret" env:"AGENT_JWT_SECRET" help:"Sign a bearer token with this HMAC secret."`
	Audience  string        `name:"audience" env:"AGENT_JWT_AUDIENCE" help:"Audience of the signed token."`
}

func (f ClientFlags) newClient() (*client.A2AClient, error) {
	opts := []client.Option{client.WithTimeout(f.Timeout)}
	switch {
	case f.JWTSecret != "":
		opts = append(opts, client.WithJWTAuth([]byte(f.JWTSecret), f.Audience, "", time.Hour))
	case f.APIKey != "":
		opts = append(opts, client.WithAPIKeyAuth(f.APIKey, ""))
	}
	return client.NewA2AClient(f.URL, opts...)
}

// AskCmd sends a question to a running agent.
type AskCmd struct {
	ClientFlags `embed:""`

	A2A      bool   `name:"a2a" help:"Use the A2A JSON-RPC endpoint instead of REST."`
	Question string `arg:"" help:"Question to ask."`
}

// Run prints the answer.
func (c *AskCmd) Run(out io.Writer) error {
	cli, err := c.newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	if !c.A2A {
		resp, err := cli.CountLetters(ctx, c.Question)
		if err != nil {
			return err
		}
		return printJSON(out, resp)
	}
	if _, err := cli.ResolveRPCURL(ctx); err != nil {
		log.Warnf("Falling back to the default JSON-RPC path: %v", err)
	}
	msg, err := cli.SendMessage(ctx, c.Question)
	if err != nil {
		return err
	}
	text, ok := msg.FirstText()
	if !ok {
		return errors.New("reply has no text part")
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

// CardCmd prints the agent card of a running agent.
type CardCmd struct {
	ClientFlags `embed:""`
}

// Run prints the card as indented JSON.
func (c *CardCmd) Run(out io.Writer) error {
	cli, err := c.newClient()
	if err != nil {
		return err
	}
	card, err := cli.GetAgentCard(context.Background())
	if err != nil {
		return err
	}
	return printJSON(out, card)
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	// Variables from .env must be visible before kong resolves env tags.
	envFile := ""
	for i, arg := range os.Args {
		switch {
		case arg == "--env-file" && i+1 < len(os.Args):
			envFile = os.Args[i+1]
		case strings.HasPrefix(arg, "--env-file="):
			envFile = strings.TrimPrefix(arg, "--env-file=")
		}
	}
	if err := config.LoadDotEnv(envFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("calculator-agent"),
		kong.Description("Count-letters calculator agent over REST and A2A."),
		kong.UsageOnError(),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	if err := log.Configure(cli.LogLevel, cli.LogFormat); err != nil {
		ctx.FatalIfErrorf(err)
	}
	ctx.FatalIfErrorf(ctx.Run())
}
