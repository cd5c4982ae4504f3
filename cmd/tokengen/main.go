package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/Wang-tianhao/bridge-tokengen/bridgetoken"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const usageExamples = `
Examples:
  tokengen                           # Interactive mode
  tokengen -c sensor-01              # Quick generate with sensor role
  tokengen -c admin-01 -r admin      # Admin with full access
  tokengen -c custom-01 -r custom -p "telemetry.>" -s "commands.>"
  tokengen -c test -e 0.5            # 30-minute expiry
  tokengen -c prod-sensor --secret "your-production-secret"
  tokengen --serve :5001             # Development token endpoint

Role Presets:
  sensor   - Publish to telemetry/factory, subscribe to commands
  actuator - Publish to status/events, subscribe to commands
  admin    - Full access to all topics (>)
  monitor  - Subscribe only, no publish
  custom   - Specify permissions manually with -p and -s
`

type options struct {
	clientID    string
	role        string
	publish     []string
	subscribe   []string
	expiryHours float64
	secret      string
	issuer      string
	audience    string
	format      string
	interactive bool
	serve       string
	logLevel    string

	publishSet   bool
	subscribeSet bool
}

func main() {
	// Missing .env is fine; flags and defaults still apply
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := newLogger(stderr, opts.logLevel, opts.serve != "")

	cfg, err := bridgetoken.NewConfig(
		bridgetoken.WithSecret([]byte(opts.secret)),
		bridgetoken.WithIssuer(opts.issuer),
		bridgetoken.WithAudience(opts.audience),
		bridgetoken.WithLogger(logger),
		// The CLI prints its own warning; only the server logs it
		bridgetoken.WithSecretWarnings(opts.serve != ""),
	)
	if err != nil {
		return err
	}
	issuer := bridgetoken.NewIssuer(cfg)

	if opts.serve != "" {
		logger.Info("development token endpoint listening", "addr", opts.serve)
		return bridgetoken.NewRouter(issuer).Run(opts.serve)
	}

	format, err := bridgetoken.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	var params bridgetoken.Params
	if opts.interactive || opts.clientID == "" {
		// Prompts go to stderr so stdout carries only the result
		p := newPrompter(stdin, stderr)
		params, err = p.run(opts)
	} else {
		params, err = quickParams(opts)
	}
	if err != nil {
		return err
	}

	switch {
	case cfg.UsesDefaultSecret():
		fmt.Fprintln(stderr, "WARNING: using the default development secret. Do not use this token in production; pass --secret or set TOKENGEN_SECRET.")
	case len(opts.secret) < bridgetoken.MinSecretLength:
		fmt.Fprintf(stderr, "WARNING: secret is shorter than %d bytes.\n", bridgetoken.MinSecretLength)
	}

	req, err := params.Resolve()
	if err != nil {
		return err
	}

	token, claims, err := issuer.Issue(context.Background(), req)
	if err != nil {
		return err
	}

	return bridgetoken.Write(stdout, format, token, claims)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	flags := pflag.NewFlagSet("tokengen", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Generate JWT tokens for NATS WebSocket Bridge authentication")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Usage: tokengen [flags]")
		flags.PrintDefaults()
		fmt.Fprint(stderr, usageExamples)
	}

	flags.StringVarP(&opts.clientID, "client-id", "c", "", "Device/client identifier (JWT 'sub' claim)")
	flags.StringVarP(&opts.role, "role", "r", bridgetoken.RoleSensor, "Device role (determines default permissions)")
	flags.StringSliceVarP(&opts.publish, "publish", "p", nil, "Publish permission patterns (overrides role preset)")
	flags.StringSliceVarP(&opts.subscribe, "subscribe", "s", nil, "Subscribe permission patterns (overrides role preset)")
	flags.Float64VarP(&opts.expiryHours, "expiry-hours", "e", bridgetoken.DefaultExpiryHours, "Token expiry in hours")
	flags.StringVar(&opts.secret, "secret", bridgetoken.DefaultSecret, "JWT signing secret, or $TOKENGEN_SECRET")
	flags.StringVar(&opts.issuer, "issuer", bridgetoken.DefaultIssuer, "JWT issuer claim, or $TOKENGEN_ISSUER")
	flags.StringVar(&opts.audience, "audience", bridgetoken.DefaultAudience, "JWT audience claim, or $TOKENGEN_AUDIENCE")
	flags.StringVarP(&opts.format, "format", "f", string(bridgetoken.FormatFull), "Output format: full, token, json")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Force interactive mode even with other arguments")
	flags.StringVar(&opts.serve, "serve", "", "Serve the development token endpoint on this address")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	opts.publishSet = flags.Changed("publish")
	opts.subscribeSet = flags.Changed("subscribe")

	// Environment values are applied after parsing so --help never prints them
	applyEnv(flags, "secret", "TOKENGEN_SECRET", &opts.secret)
	applyEnv(flags, "issuer", "TOKENGEN_ISSUER", &opts.issuer)
	applyEnv(flags, "audience", "TOKENGEN_AUDIENCE", &opts.audience)
	return opts, nil
}

// quickParams builds parameters straight from flags
func quickParams(opts *options) (bridgetoken.Params, error) {
	params := bridgetoken.Params{
		ClientID:    opts.clientID,
		Role:        opts.role,
		ExpiryHours: opts.expiryHours,
	}
	if opts.publishSet {
		params.Publish = nonEmpty(opts.publish)
	}
	if opts.subscribeSet {
		params.Subscribe = nonEmpty(opts.subscribe)
	}
	return params, nil
}

// nonEmpty drops blank entries but keeps the slice non-nil
func nonEmpty(patterns []string) []string {
	out := []string{}
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// applyEnv sets *dst from key unless the flag was given explicitly
func applyEnv(flags *pflag.FlagSet, name, key string, dst *string) {
	if flags.Changed(name) {
		return
	}
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func newLogger(w io.Writer, level string, jsonOutput bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	handlerOpts := &slog.HandlerOptions{Level: lvl}
	if jsonOutput {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}
