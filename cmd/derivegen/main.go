package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhump/derive"
	"github.com/jhump/derive/internal/logging"
	"github.com/jhump/derive/processor"
)

type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("derivegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to a TOML config file.")
	outputDir := fs.String("output_dir", "", "Directory where generated files are written. If blank, output is written to stdout.")
	namespace := fs.String("namespace", "", "Path that qualifies contract names, e.g. \"nanoserde\".")
	logLevel := fs.String("log_level", "", "Log level: trace, debug, info, warn, error, or off.")
	var contracts stringList
	fs.Var(&contracts, "contract", "Contract to implement. May be repeated. Defaults to all registered contracts.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("must supply at least one declaration file")
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *namespace != "" {
		cfg.Namespace = *namespace
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if len(contracts) > 0 {
		cfg.Contracts = normalizeContracts(contracts)
	}

	logger := logging.New(stderr, "derivegen", logging.Options{Level: cfg.LogLevel})

	var decls []derive.Declaration
	for _, path := range fs.Args() {
		d, err := processor.LoadDeclarationsFile(path)
		if err != nil {
			return err
		}
		logger.Debug().Str("file", path).Int("declarations", len(d)).Msg("loaded declarations")
		decls = append(decls, d...)
	}

	factory := processor.WriterOutputFactory(stdout)
	if cfg.OutputDir != "" {
		factory = processor.DefaultOutputFactory(cfg.OutputDir)
	}
	proc := processor.Config{
		Namespace:     cfg.Namespace,
		Contracts:     cfg.Contracts,
		OutputFactory: factory,
		Logger:        &logger,
	}
	return proc.Execute(decls)
}
