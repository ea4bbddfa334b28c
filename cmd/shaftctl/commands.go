package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"shaft-planner/internal/planner/drawing"
	"shaft-planner/internal/planner/lift"
	"shaft-planner/internal/planner/policy"
	"shaft-planner/internal/planner/render"
	"shaft-planner/internal/planner/samples"
)

// common flags of every command
type serviceFlags struct {
	policy string
	assets string
}

func (f *serviceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.policy, "policy", os.Getenv("POLICY_PATH"), "policy YAML overlay")
	fs.StringVar(&f.assets, "assets", "assets", "directory with machine images")
}

func (f *serviceFlags) service() (*drawing.Service, error) {
	pol := policy.Default()
	if f.policy != "" {
		var err error
		if pol, err = policy.Load(f.policy); err != nil {
			return nil, err
		}
	}
	return drawing.NewService(pol, f.assets), nil
}

func readRequest(path string) (*drawing.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	req, err := drawing.DecodeYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return req, nil
}

// ============================================================
// render
// ============================================================

func renderCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var sf serviceFlags
	sf.register(fs)
	out := fs.String("o", "", "output file (default: request name with the format extension)")
	formatName := fs.String("format", "", "png or svg (default: from -o extension, else png)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("render: expected one request file")
	}
	in := fs.Arg(0)

	if *formatName == "" && *out != "" {
		*formatName = strings.TrimPrefix(filepath.Ext(*out), ".")
	}
	format, err := render.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	if *out == "" {
		*out = strings.TrimSuffix(in, filepath.Ext(in)) + "." + string(format)
	}

	svc, err := sf.service()
	if err != nil {
		return err
	}
	req, err := readRequest(in)
	if err != nil {
		return err
	}
	if err := writeDrawing(svc, req, format, *out); err != nil {
		return withProblems(err)
	}
	fmt.Fprintf(stdout, "%s drawing written to %s\n", req.Kind, *out)
	return nil
}

func writeDrawing(svc *drawing.Service, req *drawing.Request, format render.Format, path string) error {
	var buf bytes.Buffer
	if err := svc.Render(req, format, &buf); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir output dir: %w", err)
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ============================================================
// validate
// ============================================================

func validateCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	var sf serviceFlags
	sf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("validate: expected one request file")
	}

	svc, err := sf.service()
	if err != nil {
		return err
	}
	req, err := readRequest(fs.Arg(0))
	if err != nil {
		return err
	}
	sum, err := svc.Validate(req)
	if err != nil {
		return withProblems(err)
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(sum)
}

// ============================================================
// samples
// ============================================================

// samplesCmd рисует весь каталог. Ошибка одного образца не останавливает остальные.
func samplesCmd(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("samples", flag.ContinueOnError)
	var sf serviceFlags
	sf.register(fs)
	dir := fs.String("out", "samples", "output directory")
	formatName := fs.String("format", "png", "png or svg")
	only := fs.String("only", "", "comma-separated sample names")
	list := fs.Bool("list", false, "print sample names and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := samples.All()
	if err != nil {
		return err
	}
	if *list {
		for _, s := range all {
			fmt.Fprintf(stdout, "%-32s %-8s %s\n", s.Name, s.Request.Kind, s.Description)
		}
		return nil
	}

	format, err := render.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	svc, err := sf.service()
	if err != nil {
		return err
	}

	wanted := map[string]bool{}
	for _, n := range strings.Split(*only, ",") {
		if n = strings.TrimSpace(n); n != "" {
			wanted[n] = true
		}
	}

	var errs error
	written := 0
	for _, s := range all {
		if len(wanted) > 0 && !wanted[s.Name] {
			continue
		}
		req := s.Request
		path := filepath.Join(*dir, s.Name+"."+string(format))
		if err := writeDrawing(svc, &req, format, path); err != nil {
			zap.S().Warnf("[SAMPLES] %s failed: %v", s.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		zap.S().Debugf("[SAMPLES] %s -> %s", s.Name, path)
		written++
	}
	fmt.Fprintf(stdout, "%d samples written to %s\n", written, *dir)
	if written == 0 && errs == nil {
		return fmt.Errorf("no sample matched %q", *only)
	}
	return errs
}

// withProblems подробно раскрывает нарушения для вывода в терминал.
func withProblems(err error) error {
	problems := lift.Problems(err)
	if len(problems) <= 1 {
		return err
	}
	return fmt.Errorf("%d problems:\n  - %s", len(problems), strings.Join(problems, "\n  - "))
}
