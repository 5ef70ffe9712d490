// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package printer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/xmlupload/internal/cli/renderer"
	"github.com/platform-engineering-labs/xmlupload/internal/util"
	pkgmodel "github.com/platform-engineering-labs/xmlupload/pkg/model"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format %q, must be json or yaml", s)
	}
}

type MachineReadablePrinter[T any] struct {
	w      io.Writer
	format Format
}

func NewMachineReadablePrinter[T any](w io.Writer, format Format) *MachineReadablePrinter[T] {
	return &MachineReadablePrinter[T]{
		w:      w,
		format: format,
	}
}

func (p *MachineReadablePrinter[T]) Print(v *T) error {
	var data []byte
	var err error
	switch p.format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		data = append(data, '\n')
	}
	_, err = p.w.Write(data)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// IDMapping is the report of which document id became which remote
// identifier during a run.
type IDMapping struct {
	RunID     string             `json:"runId" yaml:"runId"`
	Source    string             `json:"source" yaml:"source"`
	Total     int                `json:"total" yaml:"total"`
	Completed bool               `json:"completed" yaml:"completed"`
	Resources []pkgmodel.Mapping `json:"resources" yaml:"resources"`
}

// WriteIDMapping writes m to path in the given format, creating missing
// parent directories.
func WriteIDMapping(path string, format Format, m *IDMapping) error {
	if err := util.EnsureFileFolderHierarchy(path); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	err = NewMachineReadablePrinter[IDMapping](f, format).Print(m)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}

type HumanReadablePrinter[T any] struct {
	w io.Writer
}

func NewHumanReadablePrinter[T any](w io.Writer) *HumanReadablePrinter[T] {
	return &HumanReadablePrinter[T]{
		w: w,
	}
}

func (p *HumanReadablePrinter[T]) Print(v *T) error {
	switch v := any(v).(type) {
	case *pkgmodel.Document:
		output, err := renderer.RenderDocument(v)
		if err != nil {
			return fmt.Errorf("render document: %w", err)
		}
		_, err = p.w.Write([]byte(output))
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	default:
		return fmt.Errorf("unsupported type: %T", v)
	}

	return nil
}
