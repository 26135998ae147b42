package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-jobform"
	"github.com/goliatone/go-jobform/internal/config"
	"github.com/goliatone/go-jobform/internal/logger"
	"github.com/goliatone/go-jobform/internal/server"
	"github.com/goliatone/go-jobform/pkg/application"
	"github.com/goliatone/go-jobform/pkg/orchestrator"
	"github.com/goliatone/go-jobform/pkg/render"
	"github.com/goliatone/go-jobform/pkg/renderers/tui"
	"github.com/goliatone/go-jobform/pkg/renderers/vanilla"
	"github.com/goliatone/go-jobform/pkg/schema"
	"github.com/goliatone/go-jobform/pkg/summary"
)

const usage = `usage: jobform <command> [flags]

commands:
  serve      serve the form over HTTP
  tui        fill in the form on the terminal
  validate   validate a JSON application file
  render     render the form as HTML
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "tui":
		err = runTUI(ctx, os.Args[2:])
	case "validate":
		err = runValidate(ctx, os.Args[2:], os.Stdout)
	case "render":
		err = runRender(ctx, os.Args[2:], os.Stdout)
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	var issues schema.Issues
	switch {
	case err == nil:
	case errors.As(err, &issues):
		os.Exit(1)
	case errors.Is(err, tui.ErrAborted):
		os.Exit(130)
	default:
		fmt.Fprintf(os.Stderr, "jobform: %v\n", err)
		os.Exit(1)
	}
}

// settings are the flags every command shares.
type settings struct {
	configPath string
	formPath   string
	logLevel   string
}

func (s *settings) register(fs *flag.FlagSet) {
	fs.StringVar(&s.configPath, "config", "", "YAML config file")
	fs.StringVar(&s.formPath, "form", "", "OpenAPI form document (embedded form if empty)")
	fs.StringVar(&s.logLevel, "log-level", "", "log level override")
}

// load resolves config with flags taking precedence.
func (s *settings) load() (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(s.configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if s.formPath != "" {
		cfg.FormPath = s.formPath
	}
	if s.logLevel != "" {
		cfg.LogLevel = s.logLevel
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr), nil
}

func newOrchestrator(cfg config.Config, log logrus.FieldLogger, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	options = append(options, orchestrator.WithLogger(log))
	if cfg.Preset != "" {
		data, err := os.ReadFile(cfg.Preset)
		if err != nil {
			return nil, fmt.Errorf("read preset: %w", err)
		}
		preset, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(preset))
	}
	return jobform.NewOrchestrator(options...), nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var s settings
	s.register(fs)
	addr := fs.String("addr", "", "listen address override")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, log, err := s.load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	rate, err := cfg.Rate()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cfg, log)
	if err != nil {
		return err
	}

	srv, err := server.New(ctx, server.Options{
		Addr:         cfg.Addr,
		Production:   cfg.Production(),
		Rate:         rate,
		Logger:       log,
		Source:       jobform.Source(cfg.FormPath),
		OperationID:  jobform.OperationID,
		Orchestrator: orch,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func runTUI(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	var s settings
	s.register(fs)
	output := fs.String("output", "", "write the accepted application JSON to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, log, err := s.load()
	if err != nil {
		return err
	}
	registry, err := render.NewRegistry(tui.New(tui.WithLogger(log)))
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(cfg, log, orchestrator.WithRegistry(registry), orchestrator.WithDefaultRenderer(tui.Name))
	if err != nil {
		return err
	}

	out, err := orch.Generate(ctx, orchestrator.Request{
		Source:      jobform.Source(cfg.FormPath),
		OperationID: jobform.OperationID,
	})
	if err != nil {
		return err
	}
	if *output != "" {
		return os.WriteFile(*output, append(out, '\n'), 0o644)
	}
	return nil
}

func runValidate(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var s settings
	s.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("validate: expected one JSON file argument")
	}

	cfg, log, err := s.load()
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("validate: decode %s: %w", fs.Arg(0), err)
	}

	orch, err := newOrchestrator(cfg, log)
	if err != nil {
		return err
	}
	formModel, err := orch.Form(ctx, orchestrator.Request{
		Source:      jobform.Source(cfg.FormPath),
		OperationID: jobform.OperationID,
	})
	if err != nil {
		return err
	}
	compiled, err := schema.New(formModel, schema.WithEvaluator(orch.Evaluator()))
	if err != nil {
		return err
	}

	if issues := compiled.Validate(values); len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintf(stdout, "%s: %s\n", issue.Field, issue.Message)
		}
		return issues
	}

	data, err := application.FromValues(values)
	if err != nil {
		return err
	}
	text, err := summary.New(data, time.Now()).Text()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, text)
	return nil
}

func runRender(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var s settings
	s.register(fs)
	valuesPath := fs.String("values", "", "JSON file with values to prefill")
	output := fs.String("output", "", "output file (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, log, err := s.load()
	if err != nil {
		return err
	}
	var values map[string]any
	if *valuesPath != "" {
		raw, err := os.ReadFile(*valuesPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(raw, &values); err != nil {
			return fmt.Errorf("render: decode %s: %w", *valuesPath, err)
		}
	}

	orch, err := newOrchestrator(cfg, log, orchestrator.WithDefaultRenderer(vanilla.Name))
	if err != nil {
		return err
	}
	html, err := orch.Generate(ctx, orchestrator.Request{
		Source:        jobform.Source(cfg.FormPath),
		OperationID:   jobform.OperationID,
		RenderOptions: render.RenderOptions{Values: values},
	})
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, html, 0o644); err != nil {
			return err
		}
		log.WithField("output", *output).Info("form written")
		return nil
	}
	_, err = stdout.Write(html)
	return err
}
