package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"falcon-signer/pkg/encoding"
	"falcon-signer/pkg/params"
	"falcon-signer/pkg/poly"
	"falcon-signer/pkg/sampling"
)

func hashToPointCommand() *cli.Command {
	return &cli.Command{
		Name:      "hash-to-point",
		Usage:     "Hash a message and salt to a ring element",
		UsageText: "falconkit hash-to-point --message MSG [--salt HEX]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagMessage, Usage: "Message to hash", Required: true},
			&cli.StringFlag{Name: flagSalt, Usage: "40-byte salt in hex (default all zero)"},
		},
		Action: hashToPoint,
	}
}

func hashToPoint(c *cli.Context) error {
	log := createLogger(c)
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	set, err := cfg.paramSet()
	if err != nil {
		return err
	}
	salt := make([]byte, params.SaltLen)
	if s := c.String(flagSalt); s != "" {
		if salt, err = hex.DecodeString(s); err != nil {
			return errors.Wrap(err, "salt is not hex")
		}
		if len(salt) != params.SaltLen {
			return errors.Errorf("salt must be %d bytes, got %d", params.SaltLen, len(salt))
		}
	}
	point := poly.HashToPoint([]byte(c.String(flagMessage)), salt, set.N)
	log.Debug().Str("params", set.Name).Int("n", set.N).Msg("hashed to point")

	coeffs := make([]int, len(point))
	for i, x := range point {
		coeffs[i] = int(x)
	}
	return writeInts(c.App.Writer, coeffs)
}

func compressCommand() *cli.Command {
	return &cli.Command{
		Name:      "compress",
		Usage:     "Compress signed coefficients read from stdin into hex",
		UsageText: "falconkit compress < coefficients.txt",
		Action:    compress,
	}
}

func compress(c *cli.Context) error {
	log := createLogger(c)
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	set, err := cfg.paramSet()
	if err != nil {
		return err
	}
	v, err := readInts(reader(c))
	if err != nil {
		return err
	}
	b, err := encoding.Compress(v, set.ContentBudget())
	if err != nil {
		return err
	}
	log.Info().Int("coefficients", len(v)).Int("bytes", len(b)).Int64("sqnorm", poly.SqNorm(v)).Msg("compressed")
	_, err = fmt.Fprintln(c.App.Writer, hex.EncodeToString(b))
	return err
}

func decompressCommand() *cli.Command {
	return &cli.Command{
		Name:      "decompress",
		Usage:     "Decompress hex content into signed coefficients",
		UsageText: "falconkit decompress [--n N] HEX",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: flagN, Usage: "Number of coefficients (default: the degree of --params)"},
		},
		Action: decompress,
	}
}

func decompress(c *cli.Context) error {
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	set, err := cfg.paramSet()
	if err != nil {
		return err
	}
	b, err := hex.DecodeString(strings.TrimSpace(c.Args().First()))
	if err != nil {
		return errors.Wrap(err, "content is not hex")
	}
	n := set.N
	if c.IsSet(flagN) {
		if n = c.Int(flagN); n <= 0 {
			return errors.Errorf("--%s must be positive, got %d", flagN, n)
		}
	}
	v, err := encoding.Decompress(b, set.ContentBudget(), n)
	if err != nil {
		return err
	}
	return writeInts(c.App.Writer, v)
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a hex signature and check its norm against a hashed message",
		UsageText: "falconkit parse HEX",
		Action:    parse,
	}
}

func parse(c *cli.Context) error {
	log := createLogger(c)
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	set, err := cfg.paramSet()
	if err != nil {
		return err
	}
	b, err := hex.DecodeString(strings.TrimSpace(c.Args().First()))
	if err != nil {
		return errors.Wrap(err, "signature is not hex")
	}
	sig, err := encoding.ParseSignature(b, set)
	if err != nil {
		return err
	}
	s2, err := sig.Coefficients(set)
	if err != nil {
		return err
	}
	sqnorm := poly.SqNorm(s2)
	log.Info().
		Str("params", set.Name).
		Str("salt", hex.EncodeToString(sig.Salt[:])).
		Int("content_bytes", len(sig.Content)).
		Int64("sqnorm_s2", sqnorm).
		Bool("within_bound", set.AcceptsNorm(sqnorm)).
		Msg("parsed signature")
	return writeInts(c.App.Writer, s2)
}

func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:      "sample",
		Usage:     "Draw discrete Gaussian samples and report their moments",
		UsageText: "falconkit sample [--mu MU] [--sigma SIGMA] [--samples N] [--seed HEX] [--plot FILE]",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: flagMu, Usage: "Center"},
			&cli.Float64Flag{Name: flagSigma, Usage: "Standard deviation, at most 1.8205"},
			&cli.IntFlag{Name: flagSamples, Usage: "Number of draws"},
			&cli.StringFlag{Name: flagSeed, Usage: "Hex seed for a deterministic run"},
			&cli.StringFlag{Name: flagPRNG, Usage: "Seeded generator: chacha20 or lattigo"},
			&cli.StringFlag{Name: flagPlot, Usage: "Write an HTML histogram to this file"},
		},
		Action: sample,
	}
}

// sampleStats summarizes a run of the sampler.
type sampleStats struct {
	Mean     float64
	Variance float64
	Counts   map[int]int
}

func drawSamples(s *sampling.Sampler, mu, sigma float64, n int) ([]int, error) {
	mus := make([]float64, n)
	for i := range mus {
		mus[i] = mu
	}
	return s.SampleVec(mus, sigma)
}

func summarize(zs []int) sampleStats {
	st := sampleStats{Counts: make(map[int]int)}
	if len(zs) == 0 {
		return st
	}
	var sum, sumSq float64
	for _, z := range zs {
		st.Counts[z]++
		sum += float64(z)
	}
	st.Mean = sum / float64(len(zs))
	for _, z := range zs {
		d := float64(z) - st.Mean
		sumSq += d * d
	}
	st.Variance = sumSq / float64(len(zs))
	return st
}

func sample(c *cli.Context) error {
	log := createLogger(c)
	cfg, err := configFromContext(c)
	if err != nil {
		return err
	}
	set, err := cfg.paramSet()
	if err != nil {
		return err
	}
	if cfg.Samples <= 0 {
		return errors.Errorf("samples must be positive, got %d", cfg.Samples)
	}
	rnd, err := cfg.randomness()
	if err != nil {
		return err
	}
	// sigmin of the parameter set may exceed a small requested sigma
	sigmin := math.Min(set.SigMin, cfg.Sigma)
	zs, err := drawSamples(sampling.NewSampler(sigmin, rnd), cfg.Mu, cfg.Sigma, cfg.Samples)
	if err != nil {
		return err
	}
	st := summarize(zs)
	log.Info().
		Float64("mu", cfg.Mu).
		Float64("sigma", cfg.Sigma).
		Float64("sigmin", sigmin).
		Int("samples", len(zs)).
		Float64("mean", st.Mean).
		Float64("variance", st.Variance).
		Msg("sampled")
	if _, err := fmt.Fprintf(c.App.Writer, "mean %.6f variance %.6f\n", st.Mean, st.Variance); err != nil {
		return err
	}

	if path := c.String(flagPlot); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "create %s", path)
		}
		defer f.Close()
		if err := renderHistogram(f, cfg, st); err != nil {
			return err
		}
		log.Info().Str("file", path).Msg("wrote histogram")
	}
	return nil
}

func paramsCommand() *cli.Command {
	return &cli.Command{
		Name:  "params",
		Usage: "List the parameter sets",
		Action: func(c *cli.Context) error {
			for _, s := range params.All() {
				_, err := fmt.Fprintf(c.App.Writer, "%s n=%d sigma=%v sigmin=%v sig_bound=%d sig_bytelen=%d header=0x%02x\n",
					s.Name, s.N, s.Sigma, s.SigMin, s.SigBound, s.SigByteLen, s.Header())
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func reader(c *cli.Context) io.Reader {
	if c.App.Reader != nil {
		return c.App.Reader
	}
	return os.Stdin
}

func readInts(r io.Reader) ([]int, error) {
	var v []int
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		x, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return nil, errors.Wrapf(err, "coefficient %d", len(v))
		}
		v = append(v, x)
	}
	return v, errors.Wrap(scanner.Err(), "read coefficients")
}

func writeInts(w io.Writer, v []int) error {
	s := make([]string, len(v))
	for i, x := range v {
		s[i] = strconv.Itoa(x)
	}
	_, err := fmt.Fprintln(w, strings.Join(s, " "))
	return err
}
