// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/genograph/archive"
	"github.com/katalvlaran/genograph/builder"
	"github.com/katalvlaran/genograph/genome"
)

const chainBlueprint = `nodes:
  - name: in
    kind: Input
    params: {output_shape: [4]}
  - name: hidden
    kind: Dense
    params: {units: 10, activation: relu, use_bias: true}
  - name: out
    kind: Output
    params: {input_shape: [10]}
edges:
  - {from: in, to: hidden}
  - {from: hidden, to: out}
`

const chainText = `{"node":"Input","params":{"output_shape":[4]}}
{"node":"Dense","params":{"units":10,"activation":"relu","use_bias":true}}
{"node":"Output","params":{"input_shape":[10]}}
CONNECTIONS
0 1
1 2
`

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// dirConfig writes a config using a directory archive under dir.
func dirConfig(t *testing.T, dir string) string {
	t.Helper()
	return writeFile(t, dir, "genomectl.yaml",
		"log:\n  level: error\narchive:\n  backend: dir\n  path: "+filepath.Join(dir, "archive")+"\n")
}

func TestBuild_PrintsText(t *testing.T) {
	dir := t.TempDir()
	bp := writeFile(t, dir, "chain.yaml", chainBlueprint)

	out, _, err := execute(t, "", "build", bp)
	require.NoError(t, err)
	assert.Equal(t, chainText, out)
}

func TestBuild_Rejected(t *testing.T) {
	dir := t.TempDir()
	bp := writeFile(t, dir, "bad.yaml", `nodes:
  - {name: a, kind: Input, params: {output_shape: [4]}}
  - {name: b, kind: Input, params: {output_shape: [4]}}
edges:
  - {from: a, to: b}
`)
	_, _, err := execute(t, "", "build", bp)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)
	assert.ErrorIs(t, err, genome.ErrIncompatibleEdge)
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "chain.genome", chainText)

	out, _, err := execute(t, "", "inspect", file)
	require.NoError(t, err)
	assert.Contains(t, out, "nodes: 3 edges: 2 genomes: 1 valid: true\n")
	assert.Contains(t, out, "genome 0: members=3 inputs=1 outputs=1 valid=true\n")
	assert.Contains(t, out, "  0 Input [] -> [4]\n")
	assert.Contains(t, out, "  1 Dense [4] -> [10]\n")

	fromStdin, _, err := execute(t, chainText, "inspect", "-")
	require.NoError(t, err)
	assert.Equal(t, out, fromStdin)
}

func TestInspect_Errors(t *testing.T) {
	_, _, err := execute(t, "", "inspect")
	assert.Error(t, err)

	_, _, err = execute(t, "not a record\n", "inspect", "-")
	assert.Error(t, err)

	_, _, err = execute(t, "", "inspect", "a.genome", "--name", "x")
	assert.Error(t, err)
}

func TestSample(t *testing.T) {
	out, _, err := execute(t, chainText, "sample", "-n", "3", "-")
	require.NoError(t, err)
	assert.Equal(t, "Dense -> Output\nDense -> Output\nDense -> Output\n", out)

	_, _, err = execute(t, chainText, "sample", "-n", "0", "-")
	assert.Error(t, err)
}

func TestArchiveLifecycle(t *testing.T) {
	dir := t.TempDir()
	cfg := dirConfig(t, dir)
	bp := writeFile(t, dir, "chain.yaml", chainBlueprint)

	out, _, err := execute(t, "", "--config", cfg, "build", bp, "--save", "chain")
	require.NoError(t, err)
	assert.Equal(t, "saved chain (3 nodes)\n", out)

	out, _, err = execute(t, chainText, "-c", cfg, "archive", "save", "copy", "-")
	require.NoError(t, err)
	assert.Equal(t, "saved copy\n", out)

	out, _, err = execute(t, "", "-c", cfg, "archive", "list")
	require.NoError(t, err)
	assert.Equal(t, "chain\ncopy\n", out)

	out, _, err = execute(t, "", "-c", cfg, "archive", "load", "chain")
	require.NoError(t, err)
	assert.Equal(t, chainText, out)

	out, _, err = execute(t, "", "-c", cfg, "inspect", "--name", "copy")
	require.NoError(t, err)
	assert.Contains(t, out, "valid: true")

	_, _, err = execute(t, "", "-c", cfg, "archive", "delete", "chain")
	require.NoError(t, err)
	_, _, err = execute(t, "", "-c", cfg, "archive", "load", "chain")
	assert.ErrorIs(t, err, archive.ErrNotFound)

	_, _, err = execute(t, "garbage\n", "-c", cfg, "archive", "save", "bad", "-")
	assert.Error(t, err)
	out, _, err = execute(t, "", "-c", cfg, "archive", "list")
	require.NoError(t, err)
	assert.Equal(t, "copy\n", out)
}

func TestMetricsFlag(t *testing.T) {
	_, errOut, err := execute(t, chainText, "--metrics", "inspect", "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "genograph_operations_total{op=import,result=ok} 1\n")
	assert.Contains(t, errOut, "genograph_nodes 3\n")
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "bad.yaml", "archive:\n  backend: s3\n")
	_, _, err := execute(t, "", "-c", cfg, "archive", "list")
	assert.Error(t, err)
}
