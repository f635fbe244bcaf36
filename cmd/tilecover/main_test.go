package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eak1mov/go-tilecover/index"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/google/subcommands"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return cmd.Execute(context.Background(), f)
}

func lines(out *bytes.Buffer) []string {
	return strings.Fields(out.String())
}

func TestCoverPlanar(t *testing.T) {
	var out bytes.Buffer
	cmd := &coverCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-planar", "-zoom", "0", "-bounds", "0,0,1024,512")
	require.Equal(t, subcommands.ExitSuccess, status)
	require.ElementsMatch(t, []string{"0/0/0", "0/1/0"}, lines(&out))
}

func TestCoverMinZoom(t *testing.T) {
	var out bytes.Buffer
	cmd := &coverCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-zoom", "3", "-minzoom", "5", "-bounds", "-10,-10,10,10")
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Empty(t, lines(&out))
}

func TestCoverGeospatialIndexExport(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tiles.index")
	var out bytes.Buffer
	cmd := &coverCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-zoom", "1", "-bounds", "-180,-85,180,85", "-o", outputPath)
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Empty(t, lines(&out))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	tiles, err := index.ReadAll(data)
	require.NoError(t, err)
	require.ElementsMatch(t, []tile.ID{
		{X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1},
	}, tiles)
}

func TestCoverWithConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "layers.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
layers:
  - name: plan
    url: https://plans.example.com/{z}/{x}/{y}.png
    regime: planar
    maxZoom: 0
`), 0644))

	var out bytes.Buffer
	cmd := &coverCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-config", configPath, "-zoom", "4", "-bounds", "0,0,512,512")
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Equal(t, []string{"0/0/0"}, lines(&out))

	out.Reset()
	cmd = &coverCmd{commonFlags: commonFlags{out: &out}}
	status = execute(t, cmd, "-config", configPath, "-layer", "missing", "-bounds", "0,0,1,1")
	require.Equal(t, subcommands.ExitFailure, status)
}

func TestBBox(t *testing.T) {
	var out bytes.Buffer
	cmd := &bboxCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-planar", "-tile", "1/-1/0", "-tilesize", "256")
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Equal(t, "left=-128 top=0 right=0 bottom=128\n", out.String())

	out.Reset()
	cmd = &bboxCmd{commonFlags: commonFlags{out: &out}}
	status = execute(t, cmd, "-tile", "1/1/1")
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Contains(t, out.String(), "west=0 south=-85.0511")
	require.Contains(t, out.String(), "east=180 north=0\n")
}

func TestBBoxGeoJSON(t *testing.T) {
	var out bytes.Buffer
	cmd := &bboxCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-tile", "0/0/0", "-format", "geojson")
	require.Equal(t, subcommands.ExitSuccess, status)

	var feature struct {
		Type     string `json:"type"`
		ID       string `json:"id"`
		Geometry struct {
			Type        string         `json:"type"`
			Coordinates [][][2]float64 `json:"coordinates"`
		} `json:"geometry"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &feature))
	require.Equal(t, "Feature", feature.Type)
	require.Equal(t, "0/0/0", feature.ID)
	require.Equal(t, "Polygon", feature.Geometry.Type)
	require.Len(t, feature.Geometry.Coordinates, 1)
	require.Len(t, feature.Geometry.Coordinates[0], 5)

	out.Reset()
	cmd = &bboxCmd{commonFlags: commonFlags{out: &out}}
	status = execute(t, cmd, "-planar", "-tile", "0/0/0", "-format", "geojson")
	require.Equal(t, subcommands.ExitFailure, status)
}

func TestURL(t *testing.T) {
	var out bytes.Buffer
	cmd := &urlCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd,
		"-tile", "2/3/-1",
		"-template", "http://a/{z}/{x}/{y}.png?key={key}",
		"-template", "http://b/{z}/{x}/{y}.png?key={key}",
		"-prop", "key=secret",
	)
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Equal(t, "http://a/2/3/-1.png?key=secret\n", out.String())
}

func TestURLErrors(t *testing.T) {
	for name, args := range map[string][]string{
		"missing tile":     {"-template", "http://a/{z}"},
		"no template":      {"-tile", "0/0/0"},
		"missing property": {"-tile", "0/0/0", "-template", "http://a/{z}?key={key}"},
		"bad property":     {"-tile", "0/0/0", "-template", "http://a/{z}", "-prop", "novalue"},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := &urlCmd{commonFlags: commonFlags{out: &out}}
			require.Equal(t, subcommands.ExitFailure, execute(t, cmd, args...))
			require.Empty(t, out.String())
		})
	}
}

func TestURLTileCodeAndExtremeShard(t *testing.T) {
	var out bytes.Buffer
	cmd := &urlCmd{commonFlags: commonFlags{out: &out}}
	status := execute(t, cmd, "-tile", "5", "-template", "{z}/{x}/{y}")
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Equal(t, "2/0/0\n", out.String())

	out.Reset()
	cmd = &urlCmd{commonFlags: commonFlags{out: &out}}
	status = execute(t, cmd,
		"-tile", "0/0/0",
		"-template", "a{x}", "-template", "b{x}", "-template", "c{x}",
		"-prop", "x=-9223372036854775808",
	)
	require.Equal(t, subcommands.ExitSuccess, status)
	require.Equal(t, "c-9223372036854775808\n", out.String())
}

func TestCat(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tiles.index")
	cover := &coverCmd{}
	status := execute(t, cover, "-zoom", "1", "-bounds", "-180,-85,180,85", "-o", outputPath)
	require.Equal(t, subcommands.ExitSuccess, status)

	var out bytes.Buffer
	cmd := &catCmd{commonFlags: commonFlags{out: &out}}
	require.Equal(t, subcommands.ExitSuccess, execute(t, cmd, "-i", outputPath))
	require.ElementsMatch(t, []string{"1/0/0", "1/0/1", "1/1/0", "1/1/1"}, lines(&out))

	out.Reset()
	cmd = &catCmd{commonFlags: commonFlags{out: &out}}
	require.Equal(t, subcommands.ExitSuccess, execute(t, cmd, "-i", outputPath, "-codes"))
	require.ElementsMatch(t, []string{"1", "2", "3", "4"}, lines(&out))

	cmd = &catCmd{commonFlags: commonFlags{out: &out}}
	require.Equal(t, subcommands.ExitUsageError, execute(t, cmd))
}
