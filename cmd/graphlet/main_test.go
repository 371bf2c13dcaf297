package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	defer func() { os.Stdout = old }()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan struct{})
	var buf bytes.Buffer
	go func() { io.Copy(&buf, r); close(done) }()

	ferr := fn()
	w.Close()
	<-done
	return buf.String(), ferr
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHelp(t *testing.T) {
	out, err := captureStdout(t, func() error {
		return run([]string{"help", "serve"})
	})
	require.NoError(t, err)
	require.Contains(t, out, "serve FLAGS")
}

func TestUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
}

func TestPrintSchema(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", `
		type Query { hello(name: String = "world"): String }
	`)

	out, err := captureStdout(t, func() error {
		return run([]string{"print-schema", "-schema", schemaFile})
	})
	require.NoError(t, err)
	require.Contains(t, out, "type Query")
	require.Contains(t, out, `name: String = "world"`)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.graphql", `type Query { hello: String }`)
	queryFile := writeFile(t, dir, "query.graphql", `query($a: Int!, $b: Boolean!) { hello }`)

	t.Run("reports all errors", func(t *testing.T) {
		out, err := captureStdout(t, func() error {
			return run([]string{"check", "-schema", schemaFile, "-query", queryFile, "-variables", `{"b": null}`})
		})
		require.Error(t, err)
		require.Contains(t, out, "Variable '$a' of required type 'Int!' was not provided.")
		require.Contains(t, out, "Variable '$b' of non-null type 'Boolean!' must not be null.")
	})

	t.Run("ok", func(t *testing.T) {
		out, err := captureStdout(t, func() error {
			return run([]string{"check", "-schema", schemaFile, "-query", queryFile, "-variables", `{"a": 1, "b": true}`})
		})
		require.NoError(t, err)
		require.Contains(t, out, "OK")
	})
}
