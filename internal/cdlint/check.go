package cdlint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.followtheprocess.codes/cdlint/internal/config"
	"go.followtheprocess.codes/cdlint/internal/decoder"
	"go.followtheprocess.codes/cdlint/internal/diag"
	"go.followtheprocess.codes/cdlint/internal/format"
	"go.followtheprocess.codes/cdlint/internal/lint"
	"go.followtheprocess.codes/cdlint/internal/syntax/parser"
	"go.followtheprocess.codes/msg"
	"golang.org/x/sync/errgroup"
)

// CheckOptions are the options passed to the check subcommand.
type CheckOptions struct {
	// Path is the path (file or directory) to check.
	Path string

	// Config is the path to the cdlint config file.
	Config string

	// Format is the output format, one of "pretty", "json", "yaml" or
	// "toml". Empty means pretty.
	Format string

	// Debug enables debug logging.
	Debug bool
}

// result is the outcome of checking a single file. A non-nil err means the
// file could not be checked at all and the run must abort, after anything
// in diagnostics has been reported.
type result struct {
	path        string
	src         []byte
	diagnostics []diag.Diagnostic
	err         error
}

// Check implements the check subcommand.
//
// Findings are program output, not failures: a run that completes returns
// nil no matter how many problems it found. A file that cannot be checked
// at all (unreadable, or no usable top level object to lint) aborts the
// run with an error once everything gathered up to that point has been
// reported.
func (c CDLint) Check(ctx context.Context, options CheckOptions) error {
	logger := c.logger.With("path", options.Path)
	logger.Debug("Checking path")

	cfg, err := config.Load(options.Config)
	if err != nil {
		return err
	}

	exporter, err := exporterFor(options.Format)
	if err != nil {
		return err
	}

	info, err := os.Stat(options.Path)
	if err != nil {
		return fmt.Errorf("could not get path info: %w", err)
	}

	var paths []string

	if info.IsDir() {
		logger.Debug("Path is a directory")

		err = filepath.WalkDir(options.Path, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if filepath.Ext(path) == ".json" {
				paths = append(paths, path)
			}

			return nil
		})
		if err != nil {
			return fmt.Errorf("could not walk %s: %w", options.Path, err)
		}
	} else {
		logger.Debug("Path is a file")

		paths = []string{options.Path}
	}

	logger.Debug("Checking Custom Difficulty files given by path", "number", len(paths))

	// Check files concurrently but report sequentially in walk order so
	// output is deterministic. Failures ride along in the result rather
	// than failing the group, so diagnostics gathered before a failure are
	// still reported, in path order, before the run aborts
	results := make([]result, len(paths))

	group := errgroup.Group{}

	for i, path := range paths {
		group.Go(func() error {
			results[i] = c.checkFile(path, cfg)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	numErrors, numWarnings := 0, 0

	for _, res := range results {
		for _, diagnostic := range res.diagnostics {
			switch diagnostic.Severity {
			case diag.Error:
				numErrors++
			case diag.Warning:
				numWarnings++
			}
		}

		switch {
		case exporter != nil:
			if len(res.diagnostics) > 0 || res.err == nil {
				report := format.NewReport(res.path, res.src, res.diagnostics)
				if err := exporter.Export(c.stdout, report); err != nil {
					return fmt.Errorf("could not export report for %s: %w", res.path, err)
				}
			}
		case res.err == nil && len(res.diagnostics) == 0:
			msg.Fsuccess(c.stdout, "%s is clean", res.path)
		default:
			for _, diagnostic := range res.diagnostics {
				render(c.stdout, res.path, res.src, diagnostic)
			}
		}

		if res.err != nil {
			return res.err
		}
	}

	if exporter == nil && numErrors+numWarnings > 0 {
		summary := fmt.Sprintf("found %d problems (%d errors, %d warnings)",
			numErrors+numWarnings, numErrors, numWarnings)

		if numErrors > 0 {
			msg.Ferror(c.stdout, "%s", summary)
		} else {
			msg.Fwarn(c.stdout, "%s", summary)
		}
	}

	return nil
}

// checkFile runs the full pipeline over a single file: parse, decode, then
// lint, accumulating diagnostics from every stage.
func (c CDLint) checkFile(path string, cfg config.Config) result {
	logger := c.logger.With("file", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return result{path: path, err: fmt.Errorf("could not read %s: %w", path, err)}
	}

	p := parser.New(path, src)

	root, err := p.Parse()
	if err != nil && !errors.Is(err, parser.ErrParse) {
		return result{path: path, src: src, err: err}
	}

	diagnostics := p.Diagnostics()
	logger.Debug("Parsed", "diagnostics", len(diagnostics))

	dec := decoder.New()

	cd, err := dec.Decode(root)
	if err != nil {
		// No usable top level object means nothing to lint, so the run
		// aborts. Syntax diagnostics gathered so far still get reported
		return result{
			path:        path,
			src:         src,
			diagnostics: diagnostics,
			err:         fmt.Errorf("could not check %s: %w", path, err),
		}
	}

	diagnostics = append(diagnostics, dec.Diagnostics()...)
	logger.Debug("Decoded", "diagnostics", len(dec.Diagnostics()))

	var graphOut io.Writer

	if cfg.GenerateCyclicReferenceGraph {
		dotPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".dot"

		file, err := os.Create(dotPath)
		if err != nil {
			return result{
				path:        path,
				src:         src,
				diagnostics: diagnostics,
				err:         fmt.Errorf("could not create %s: %w", dotPath, err),
			}
		}
		defer file.Close()

		logger.Debug("Writing the Base reference graph", "file", dotPath)

		graphOut = file
	}

	lintDiagnostics, err := lint.Run(cfg, &cd, graphOut)

	diagnostics = append(diagnostics, lintDiagnostics...)

	return result{path: path, src: src, diagnostics: diagnostics, err: err}
}

// exporterFor returns the exporter to use for the named output format, or
// nil for the default human readable output.
func exporterFor(name string) (format.Exporter, error) {
	switch name {
	case "", "pretty":
		return nil, nil
	case "json":
		return format.JSONExporter{}, nil
	case "yaml":
		return format.YAMLExporter{}, nil
	case "toml":
		return format.TOMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unrecognised output format %q, options are pretty, json, yaml or toml", name)
	}
}
