package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dstockto/partgen/cad"
	"github.com/dstockto/partgen/db"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Resolution = 0.5
	cfg.Database = filepath.Join(dir, "builds.db")
	cfg.MetricsFile = filepath.Join(dir, "partgen.prom")
	return cfg
}

func TestPipelineBuildsAndRecords(t *testing.T) {
	cfg := testConfig(t)

	var hashes []string
	for i := 0; i < 2; i++ {
		p, err := newPipeline(cfg, zap.NewNop())
		require.NoError(t, err)
		res, err := p.Build(clipPart(cfg.Clip))
		require.NoError(t, err)
		require.NoError(t, p.Close())

		require.Equal(t, filepath.Join(cfg.OutputDir, "clip.stl"), res.Path)
		require.Positive(t, res.Triangles)
		require.InDelta(t, cfg.Clip.Width, res.Max.Z-res.Min.Z, 0.1)
		hashes = append(hashes, res.SHA256)
	}
	require.Equal(t, hashes[0], hashes[1], "rebuild must be byte-identical")

	client, err := db.NewClient(cfg.Database)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()
	builds, err := client.RecentBuilds("clip", 10)
	require.NoError(t, err)
	require.Len(t, builds, 2)
	require.NotEqual(t, builds[0].RunID, builds[1].RunID)
	require.Equal(t, builds[0].ParamsHash, builds[1].ParamsHash)
	require.False(t, builds[0].Drifted)

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), `partgen_exports_total{part="clip",result="ok"} 1`)
	require.Contains(t, string(prom), `partgen_stage_duration_seconds_count{part="clip",stage="mesh"} 1`)
}

func TestPipelineFailureWritesNothing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = ""

	broken := part{
		Name: "broken",
		File: "broken.stl",
		Solid: func() (model3d.Solid, error) {
			return nil, errors.New("no profile")
		},
	}
	p, err := newPipeline(cfg, zap.NewNop())
	require.NoError(t, err)
	_, err = p.Build(broken)
	require.ErrorContains(t, err, "broken: no profile")
	require.NoError(t, p.Close())

	_, err = os.Stat(filepath.Join(cfg.OutputDir, "broken.stl"))
	require.True(t, os.IsNotExist(err))

	prom, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), `partgen_exports_total{part="broken",result="error"} 1`)
}

func TestPipelineRejectsInvalidParams(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database = ""
	cfg.Tail.LatchCount = 0

	p, err := newPipeline(cfg, zap.NewNop())
	require.NoError(t, err)
	_, err = p.Build(tailPart(cfg.Tail))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "tail: "))
}

func TestSelectParts(t *testing.T) {
	cfg := DefaultConfig()

	all, err := selectParts(cfg, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "clip", all[0].Name)
	require.Equal(t, "tail_curved.stl", all[1].File)

	cfg.Tail.FeatherSliceAngle = 0
	one, err := selectParts(cfg, []string{" Tail "})
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "tail_plain.stl", one[0].File)

	_, err = selectParts(cfg, []string{"nosecone"})
	require.ErrorContains(t, err, `unknown part "nosecone"`)
}

func TestRunPartsPrintsSummary(t *testing.T) {
	old := Cfg
	defer func() { Cfg = old }()
	Cfg = testConfig(t)
	Cfg.Database = ""
	Cfg.MetricsFile = ""

	cube := part{
		Name: "cube",
		File: "cube.stl",
		Solid: func() (model3d.Solid, error) {
			return cad.Extrude(cad.Rect(4, 4), cad.XY, 4)
		},
	}
	var out bytes.Buffer
	buildCmd.SetOut(&out)
	defer buildCmd.SetOut(nil)

	require.NoError(t, runParts(buildCmd, []part{cube}))
	require.Contains(t, out.String(), "cube.stl")
	require.Regexp(t, `✔ .*cube\.stl  \d+ triangles  [\d.]+ x [\d.]+ x [\d.]+ mm`, out.String())
}
