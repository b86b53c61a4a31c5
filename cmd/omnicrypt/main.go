package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"omnicrypt.dev/core/algo/common"
	"omnicrypt.dev/core/internal/tagwriter"
	"omnicrypt.dev/core/pipeline"
)

var appVersion = "custom"

func main() {
	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Version != "(devel)" {
		appVersion = info.Main.Version
	}

	app := &cli.App{
		Name:      "omnicrypt",
		HelpName:  "omnicrypt",
		Usage:     "decode container-encrypted music files",
		Version:   fmt.Sprintf("%s (%s, %s/%s)", appVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH),
		UsageText: "omnicrypt [-o /path/to/output] [--flags] -i /path/to/input",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "path to input file or directory"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "path to output directory"},
			&cli.BoolFlag{Name: "skip-noop", Aliases: []string{"n"}, Usage: "skip the raw passthrough decoder", Value: true},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"V"}, Usage: "verbose logging"},
			&cli.StringFlag{Name: "naming-format", Usage: "output filename format: auto, title-artist, artist-title, original", Value: "auto"},
			&cli.BoolFlag{Name: "supported-ext", Usage: "list registered extensions and their candidate counts, then exit"},
		},
		Action:    run,
		Copyright: "omnicrypt core",
	}

	if err := app.Run(os.Args); err != nil {
		setupLogger(false).Fatal("run failed", zap.Error(err))
	}
}

func setupLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	enabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		if verbose {
			return true
		}
		return lvl >= zapcore.InfoLevel
	})
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), os.Stderr, enabler))
}

func printSupportedExtensions() {
	exts := common.RegisteredExtensions()
	sort.Strings(exts)
	for _, ext := range exts {
		fmt.Printf("%s: %d\n", ext, len(common.RegisteredTypes(ext)))
	}
}

func run(c *cli.Context) error {
	logger := setupLogger(c.Bool("verbose"))

	if c.Bool("supported-ext") {
		printSupportedExtensions()
		return nil
	}

	input := c.String("input")
	if input == "" {
		if c.Args().Len() != 1 {
			return errors.New("specify an input file with --input or as a single positional argument")
		}
		input = c.Args().Get(0)
	}

	output := c.String("output")
	if output == "" {
		output = filepath.Dir(input)
	}
	if err := os.MkdirAll(output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	proc := &processor{
		logger:       logger,
		outputDir:    output,
		skipNoop:     c.Bool("skip-noop"),
		namingFormat: c.String("naming-format"),
		tagger:       tagwriter.New(),
	}

	stat, err := os.Stat(input)
	if err != nil {
		return err
	}
	if stat.IsDir() {
		return proc.processDir(input)
	}
	return proc.processFile(input)
}

type processor struct {
	logger       *zap.Logger
	outputDir    string
	skipNoop     bool
	namingFormat string
	tagger       pipeline.TagWriter
}

func (p *processor) processDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var lastErr error
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := p.processDir(full); err != nil {
				lastErr = err
			}
			continue
		}
		if err := p.processFile(full); err != nil {
			lastErr = err
			p.logger.Warn("decode failed", zap.String("source", full), zap.Error(err))
		}
	}
	return lastErr
}

func (p *processor) processFile(inputFile string) error {
	logger := p.logger.With(zap.String("source", inputFile))

	buf, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	ext := pipeline.GetExt(inputFile)
	res, err := pipeline.Decode(buf, ext, p.skipNoop, filepath.Base(inputFile))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	tagged, err := pipeline.Tag(p.tagger, res)
	if err != nil {
		logger.Warn("write tags failed, writing untagged audio", zap.Error(err))
		tagged = res.Audio
	}

	outName := p.outputFilename(inputFile, res)
	outPath := filepath.Join(p.outputDir, outName)
	if err := os.WriteFile(outPath, tagged, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("decoded", zap.String("destination", outPath))
	return nil
}

func (p *processor) outputFilename(inputFile string, res *pipeline.Result) string {
	stem := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	ext := "." + res.Ext
	if res.Ext == "" {
		ext = filepath.Ext(inputFile)
	}

	if p.namingFormat == "original" || res.Meta == nil {
		return stem + ext
	}

	title := res.Meta.GetTitle()
	if title == "" {
		return stem + ext
	}
	artists := strings.Join(res.Meta.GetArtists(), ", ")

	switch p.namingFormat {
	case "title-artist":
		if artists != "" {
			return title + " - " + artists + ext
		}
	case "artist-title":
		if artists != "" {
			return artists + " - " + title + ext
		}
	default: // auto
		if artists != "" {
			return artists + " - " + title + ext
		}
	}
	return title + ext
}
