package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hanpama/graphlet/internal/eventbus"
	"github.com/hanpama/graphlet/internal/executor"
	"github.com/hanpama/graphlet/internal/jsonrt"
	"github.com/hanpama/graphlet/internal/language"
	"github.com/hanpama/graphlet/internal/otel"
	"github.com/hanpama/graphlet/internal/schema"
	"github.com/hanpama/graphlet/internal/server"
)

const rootUsage = `graphlet — GraphQL execution engine & tools

USAGE:
  graphlet <command> [flags]

COMMANDS:
  serve            Run the HTTP GraphQL server over a JSON document
  check            Coerce a query's variables against a schema and report all errors
  print-schema     Parse SDL and print the normalized schema
  help             Show help for any command
`

const serveUsage = `serve FLAGS:
  -schema <file>             GraphQL SDL file (required)
  -data <file>               JSON document backing the runtime (required)
  -server.addr <addr>        HTTP listen address (default: :8080)
  -server.pretty             Pretty-print JSON responses
  -server.timeout <duration> Per-request timeout, e.g. 10s (default: 10s)
  -server.max-body <bytes>   Max request body size (default: unlimited)
  -cors <origin>             Allowed CORS origin. Repeatable; use * for any
  -otel.endpoint <addr>      OTLP collector endpoint
  -otel.service <name>       OpenTelemetry service name (default: graphlet)
`

const checkUsage = `check FLAGS:
  -schema <file>       GraphQL SDL file (required)
  -query <file>        GraphQL query file (required)
  -operation <name>    Operation name (default: the document's only operation)
  -variables <json>    Variable values as a JSON object (default: {})
  (Prints every variable coercion error; exits non-zero when any exist)
`

const printSchemaUsage = `print-schema FLAGS:
  -schema <file>  GraphQL SDL file (required)
  -out <file>     Write normalized SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphlet", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "serve":
		return cmdServe(cmdArgs)
	case "check":
		return cmdCheck(cmdArgs)
	case "print-schema":
		return cmdPrintSchema(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Print(serveUsage)
	case "check":
		fmt.Print(checkUsage)
	case "print-schema":
		fmt.Print(printSchemaUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func loadSchema(path string) (*schema.Schema, error) {
	if path == "" {
		return nil, fmt.Errorf("-schema is required")
	}
	sdl, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	sch, err := schema.BuildFromSDL(string(sdl))
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return sch, nil
}

func cmdServe(args []string) error {
	schemaFile := ""
	dataFile := ""
	addr := ":8080"
	pretty := false
	timeout := 10 * time.Second
	var maxBody int64
	var corsOrigins stringListFlag
	otelEndpoint := ""
	otelService := "graphlet"

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&dataFile, "data", dataFile, "JSON document backing the runtime")
	fs.StringVar(&addr, "server.addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "server.pretty", pretty, "Pretty-print JSON responses")
	fs.DurationVar(&timeout, "server.timeout", timeout, "Per-request timeout")
	fs.Int64Var(&maxBody, "server.max-body", maxBody, "Max request body size")
	fs.Var(&corsOrigins, "cors", "Allowed CORS origin")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if dataFile == "" {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-data is required")
	}
	raw, err := os.ReadFile(dataFile)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	runtime := jsonrt.New(data)

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	if maxBody > 0 {
		sopts = append(sopts, server.WithMaxBodyBytes(maxBody))
	}
	if len(corsOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(corsOrigins...))
	}
	h, err := server.New(runtime, sch, sopts...)
	if err != nil {
		return fmt.Errorf("server init: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("GraphQL server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func cmdCheck(args []string) error {
	schemaFile := ""
	queryFile := ""
	operation := ""
	variablesJSON := "{}"

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&queryFile, "query", queryFile, "GraphQL query file")
	fs.StringVar(&operation, "operation", operation, "Operation name")
	fs.StringVar(&variablesJSON, "variables", variablesJSON, "Variable values as a JSON object")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}
	if queryFile == "" {
		fmt.Fprint(os.Stderr, checkUsage)
		return fmt.Errorf("-query is required")
	}
	querySrc, err := os.ReadFile(queryFile)
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}
	doc, err := language.ParseQuery(string(querySrc))
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}

	opDef := doc.Operations.ForName(operation)
	if opDef == nil && operation == "" && len(doc.Operations) == 1 {
		opDef = doc.Operations[0]
	}
	if opDef == nil {
		return fmt.Errorf("operation %q not found", operation)
	}

	var vars map[string]any
	if err := json.Unmarshal([]byte(variablesJSON), &vars); err != nil {
		return fmt.Errorf("decode variables: %w", err)
	}

	_, errs := executor.CoerceVariableValues(sch, opDef.VariableDefinitions, vars)
	for _, e := range errs {
		fmt.Println(e.Message)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d variable error(s)", len(errs))
	}
	fmt.Println("OK")
	return nil
}

func cmdPrintSchema(args []string) error {
	schemaFile := ""
	outFile := ""
	fs := flag.NewFlagSet("print-schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "GraphQL SDL file")
	fs.StringVar(&outFile, "out", outFile, "Write normalized SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printSchemaUsage)
		return err
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		fmt.Fprint(os.Stderr, printSchemaUsage)
		return err
	}
	sdl := schema.Render(sch)
	if outFile == "" {
		fmt.Print(sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}
