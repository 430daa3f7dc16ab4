package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andreyvit/primconv"
)

// batchFile is the YAML document accepted by `primconv batch`:
//
//	precision: 3
//	narrowing: wrap
//	requests:
//	  - {op: parse, kind: int8, text: "97"}
//	  - {op: format, kind: uint32, text: "-5", max: 8}
type batchFile struct {
	Precision    int                `yaml:"precision"`
	Narrowing    primconv.Narrowing `yaml:"narrowing"`
	BasePrefixes bool               `yaml:"base_prefixes"`
	Requests     []batchRequest     `yaml:"requests"`
}

type batchRequest struct {
	Op   string        `yaml:"op"`
	Kind primconv.Kind `yaml:"kind"`
	Text string        `yaml:"text"`
	Max  int           `yaml:"max"`
}

func runBatch(args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: batch needs FILE", errUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	failed, err := processBatch(data, stdout, logger)
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of the requests failed", failed)
	}
	return nil
}

// processBatch writes one tab-separated line per request and returns the
// number of requests that failed. Failures do not stop the batch.
func processBatch(data []byte, w io.Writer, logger *slog.Logger) (int, error) {
	var bf batchFile
	if err := yaml.Unmarshal(data, &bf); err != nil {
		return 0, fmt.Errorf("batch: %w", err)
	}
	conv := primconv.New(primconv.Options{
		Precision:    bf.Precision,
		Narrowing:    bf.Narrowing,
		BasePrefixes: bf.BasePrefixes,
	})
	logger.Debug("batch: loaded", "requests", len(bf.Requests), "narrowing", bf.Narrowing, "precision", conv.Precision())

	var failed int
	for i, req := range bf.Requests {
		out, err := processRequest(conv, req)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%d\t%s\t%s\t%q\terror: %v\n", i, req.Op, req.Kind, req.Text, err)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%q\t%s\n", i, req.Op, req.Kind, req.Text, out)
	}
	return failed, nil
}

func processRequest(conv *primconv.Converter, req batchRequest) (string, error) {
	switch req.Op {
	case "parse":
		v, err := conv.ParseText(req.Text, req.Kind)
		if err != nil {
			return "", err
		}
		b, err := v.MarshalText()
		return string(b), err
	case "format":
		src, err := parseSource(req.Text)
		if err != nil {
			return "", err
		}
		maxLen := req.Max
		if maxLen == 0 {
			maxLen = 64
		}
		s, n, err := conv.FormatValue(src, req.Kind, maxLen)
		if err != nil {
			return "", err
		}
		if primconv.Truncated(n, maxLen) {
			return fmt.Sprintf("%s (truncated, %d needed)", s, n), nil
		}
		return s, nil
	default:
		return "", fmt.Errorf("unknown op %q", req.Op)
	}
}
