package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"falcon-signer/pkg/encoding"
	"falcon-signer/pkg/params"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"falconkit"}, args...))
	return out.String(), errOut.String(), err
}

func TestHashToPoint(t *testing.T) {
	out, _, err := run(t, "", "hash-to-point", "--message", "test")
	require.NoError(t, err)
	fields := strings.Fields(out)
	require.Len(t, fields, 512)
	require.Equal(t, []string{"5905", "2255", "11075", "7662", "12021", "1640", "8440", "1652"}, fields[:8])

	again, _, err := run(t, "", "hash-to-point", "--message", "test", "--salt", strings.Repeat("00", 40))
	require.NoError(t, err)
	require.Equal(t, out, again)

	out, _, err = run(t, "", "--params", "falcon1024", "hash-to-point", "--message", "test")
	require.NoError(t, err)
	require.Len(t, strings.Fields(out), 1024)

	_, _, err = run(t, "", "hash-to-point", "--message", "test", "--salt", "00")
	require.Error(t, err)
}

func TestCompressDecompress(t *testing.T) {
	out, _, err := run(t, "3 -5\n", "compress")
	require.NoError(t, err)
	content := strings.TrimSpace(out)
	require.Len(t, content, 2*params.Falcon512.ContentBudget())
	require.True(t, strings.HasPrefix(content, "034280"))

	out, _, err = run(t, "", "decompress", "--n", "2", content)
	require.NoError(t, err)
	require.Equal(t, "3 -5", strings.TrimSpace(out))

	_, _, err = run(t, "3 x", "compress")
	require.Error(t, err)
	// 3, its terminator, then a one bit in the padding
	_, _, err = run(t, "", "decompress", "--n", "1", "0340")
	require.ErrorIs(t, err, encoding.ErrMalformed)

	// 3 with one continuation bit is 131
	out, _, err = run(t, "", "decompress", "--n", "1", "0380")
	require.NoError(t, err)
	require.Equal(t, "131", strings.TrimSpace(out))

	for _, n := range []string{"-1", "0"} {
		_, _, err = run(t, "", "decompress", "--n", n, "00")
		require.Error(t, err, "--n %s", n)
	}
}

func TestParse(t *testing.T) {
	set := params.Falcon512
	s2 := make([]int, set.N)
	for i := range s2 {
		s2[i] = i%7 - 3
	}
	sig, err := encoding.NewSignature(set, [params.SaltLen]byte{9}, s2)
	require.NoError(t, err)

	out, logs, err := run(t, "", "parse", hex.EncodeToString(sig.Bytes()))
	require.NoError(t, err)
	require.Len(t, strings.Fields(out), set.N)
	require.Contains(t, logs, "within_bound=true")

	_, _, err = run(t, "", "parse", "39")
	require.ErrorIs(t, err, encoding.ErrShortSignature)
}

func TestSampleDeterministic(t *testing.T) {
	seed := strings.Repeat("ab", 32)
	args := []string{"sample", "--samples", "3000", "--seed", seed, "--mu", "-2.5", "--sigma", "1.5"}
	first, _, err := run(t, "", args...)
	require.NoError(t, err)
	second, _, err := run(t, "", args...)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.True(t, strings.HasPrefix(first, "mean -2."), first)

	lattigo, _, err := run(t, "", append(args, "--prng", "lattigo")...)
	require.NoError(t, err)
	require.NotEqual(t, first, lattigo)
}

func TestSamplePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hist.html")
	_, logs, err := run(t, "", "--loglevel", "debug", "sample", "--samples", "500", "--seed", strings.Repeat("01", 32), "--plot", path)
	require.NoError(t, err)
	require.Contains(t, logs, "wrote histogram")
	html, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(html), "SamplerZ histogram")
}

func TestSampleErrors(t *testing.T) {
	_, _, err := run(t, "", "sample", "--sigma", "3")
	require.Error(t, err)
	_, _, err = run(t, "", "sample", "--samples", "0")
	require.Error(t, err)
	_, _, err = run(t, "", "sample", "--seed", "abcd")
	require.Error(t, err)
	_, _, err = run(t, "", "--params", "falcon2048", "sample")
	require.ErrorIs(t, err, params.ErrUnknownSet)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "falconkit.yaml")
	cfg := "params: falcon1024\nseed: " + strings.Repeat("07", 32) + "\nsamples: 2000\nsigma: 1.4\nmu: 10.5\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	out, _, err := run(t, "", "--config", path, "hash-to-point", "--message", "m")
	require.NoError(t, err)
	require.Len(t, strings.Fields(out), 1024)

	out, _, err = run(t, "", "--config", path, "sample")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "mean 10."), out)

	// flags override the file
	out, _, err = run(t, "", "--config", path, "sample", "--mu", "-50.5")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "mean -50."), out)
}

func TestReadConfig(t *testing.T) {
	cfg, err := readConfig(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	cfg, err = readConfig(strings.NewReader("sigma: 1.7\nprng: lattigo\n"))
	require.NoError(t, err)
	require.Equal(t, 1.7, cfg.Sigma)
	require.Equal(t, prngLattigo, cfg.PRNG)
	require.Equal(t, params.Falcon512.Name, cfg.Params)

	_, err = readConfig(strings.NewReader("sigma: [1"))
	require.Error(t, err)

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSummarize(t *testing.T) {
	st := summarize([]int{-1, 1, 1, 3})
	require.Equal(t, 1.0, st.Mean)
	require.Equal(t, 2.0, st.Variance)
	require.Equal(t, map[int]int{-1: 1, 1: 2, 3: 1}, st.Counts)
	require.Zero(t, summarize(nil).Mean)
}
