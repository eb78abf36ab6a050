package main

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/safeopen"
	"gopkg.in/yaml.v3"

	"github.com/benz9527/xtree/lib/infra"
)

const (
	kindAVL = "avl"
	kindRB  = "rb"

	metricsNone       = "none"
	metricsStdout     = "stdout"
	metricsPrometheus = "prometheus"
)

type appConfig struct {
	Kind        string
	Desc        bool
	BorrowPred  bool
	LogLevel    string
	Encoder     string
	Metrics     string
	MetricsAddr string
	Ops         []string
	Out         io.Writer
}

func (cfg *appConfig) validate() error {
	switch cfg.Kind {
	case kindAVL, kindRB:
	default:
		return infra.NewErrorStack("unknown tree kind " + cfg.Kind + ", expected avl or rb")
	}
	switch cfg.Metrics {
	case metricsNone, metricsStdout, metricsPrometheus:
	default:
		return infra.NewErrorStack("unknown metrics exporter " + cfg.Metrics)
	}
	for _, op := range cfg.Ops {
		if _, err := parseOp(op); err != nil {
			return err
		}
	}
	return nil
}

// script is the YAML form of a run, the unset fields keep the flags.
//
//	kind: rb
//	borrowPred: true
//	ops: ["+5", "+3", "-5", "?3"]
type script struct {
	Kind       *string  `yaml:"kind"`
	Desc       *bool    `yaml:"desc"`
	BorrowPred *bool    `yaml:"borrowPred"`
	Ops        []string `yaml:"ops"`
}

// loadScript opens the file beneath its own directory so the path
// cannot escape by symlinks.
func loadScript(path string) (*script, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "script path")
	}
	dir, name := filepath.Split(abs)
	f, err := safeopen.OpenBeneath(dir, name)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "open script")
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	s := &script{}
	if err = dec.Decode(s); err != nil && err != io.EOF {
		return nil, infra.WrapErrorStackWithMessage(err, "decode script "+name)
	}
	return s, nil
}

// merge applies the script onto cfg. changed reports whether the flag
// is set explicitly, which wins over the script.
func (s *script) merge(cfg *appConfig, changed func(flag string) bool) {
	if s == nil {
		return
	}
	if s.Kind != nil && !changed("kind") {
		cfg.Kind = strings.ToLower(strings.TrimSpace(*s.Kind))
	}
	if s.Desc != nil && !changed("desc") {
		cfg.Desc = *s.Desc
	}
	if s.BorrowPred != nil && !changed("borrow-pred") {
		cfg.BorrowPred = *s.BorrowPred
	}
	cfg.Ops = append(append(make([]string, 0, len(s.Ops)+len(cfg.Ops)), s.Ops...), cfg.Ops...)
}
