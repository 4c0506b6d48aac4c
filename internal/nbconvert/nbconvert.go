// Package nbconvert turns the course's cell-marked Python scripts into
// executed Jupyter notebooks by shelling out to jupyter.
package nbconvert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrConverterNotFound is returned when the jupyter binary is not on PATH.
var ErrConverterNotFound = errors.New("jupyter command not found")

const DefaultDir = "notebooks"

type Result struct {
	Found     int
	Converted []string
	Skipped   []string
	Failed    []string
}

// Runner executes a single external command.
type Runner func(ctx context.Context, name string, args ...string) error

type Converter struct {
	dir    string
	bin    string
	run    Runner
	logger zerolog.Logger
}

type ConverterOption func(*Converter)

func WithRunner(run Runner) ConverterOption {
	return func(c *Converter) {
		c.run = run
	}
}

func WithBinary(bin string) ConverterOption {
	return func(c *Converter) {
		c.bin = bin
	}
}

func NewConverter(dir string, logger zerolog.Logger, opts ...ConverterOption) *Converter {
	if dir == "" {
		dir = DefaultDir
	}
	c := &Converter{
		dir:    dir,
		bin:    "jupyter",
		run:    execRunner,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func execRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Run converts every *.py script in the directory whose notebook is missing
// or older than the script. A failed conversion is logged and skipped; a
// missing jupyter binary aborts the run.
func (c *Converter) Run(ctx context.Context) (Result, error) {
	var res Result

	scripts, err := filepath.Glob(filepath.Join(c.dir, "*.py"))
	if err != nil {
		return res, fmt.Errorf("list scripts in %s: %w", c.dir, err)
	}
	if len(scripts) == 0 {
		c.logger.Info().Str("dir", c.dir).Msg("No Python files found in the notebooks directory")
		return res, nil
	}
	res.Found = len(scripts)
	c.logger.Info().Int("count", len(scripts)).Msg("Found Python files to convert")

	for _, script := range scripts {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		base := filepath.Base(script)

		upToDate, err := notebookUpToDate(script)
		if err != nil {
			return res, err
		}
		if upToDate {
			c.logger.Info().Str("file", base).Msg("Skipping, notebook is up to date")
			res.Skipped = append(res.Skipped, script)
			continue
		}

		c.logger.Info().Str("file", base).Msg("Converting to notebook")
		err = c.run(ctx, c.bin, "nbconvert", "--to", "notebook", "--execute", script)
		switch {
		case err == nil:
			c.logger.Info().Str("file", base).Msg("Successfully converted")
			res.Converted = append(res.Converted, script)
		case errors.Is(err, exec.ErrNotFound):
			c.logger.Error().Msg("jupyter command not found, install it with: pip install jupyter")
			return res, fmt.Errorf("convert %s: %w", base, ErrConverterNotFound)
		default:
			c.logger.Error().Err(err).Str("file", base).Msg("Error converting")
			res.Failed = append(res.Failed, script)
		}
	}
	return res, nil
}

func NotebookPath(script string) string {
	return strings.TrimSuffix(script, filepath.Ext(script)) + ".ipynb"
}

func notebookUpToDate(script string) (bool, error) {
	nb, err := os.Stat(NotebookPath(script))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat notebook for %s: %w", script, err)
	}
	py, err := os.Stat(script)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", script, err)
	}
	return nb.ModTime().After(py.ModTime()), nil
}
