// Package notebook reads Jupyter notebook documents (.ipynb) into an
// in-memory model.
//
// Decoding is deliberately loose: only invalid JSON is an error. A document
// without a usable cell list parses with HasCells false, and individual
// malformed cells or outputs decode as unknown entries that render nothing.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Sentinel errors for notebook reading.
var (
	ErrReadNotebook = errors.New("failed to read notebook")
	ErrInvalidJSON  = errors.New("notebook is not valid JSON")
)

// CellType discriminates the cell variants.
type CellType string

// Known cell types.
const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
	CellRaw      CellType = "raw"
)

// Known output types.
const (
	OutputStream        = "stream"
	OutputExecuteResult = "execute_result"
	OutputDisplayData   = "display_data"
	OutputError         = "error"
)

// Notebook is an ordered sequence of cells.
type Notebook struct {
	Cells         []Cell
	HasCells      bool // false when "cells" is missing or not an array
	Metadata      Metadata
	NBFormat      int
	NBFormatMinor int
}

// Metadata holds the notebook-level metadata fields the renderer may use.
type Metadata struct {
	KernelSpec   KernelSpec   `json:"kernelspec"`
	LanguageInfo LanguageInfo `json:"language_info"`
}

// KernelSpec describes the kernel the notebook was written for.
type KernelSpec struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Language    string `json:"language"`
}

// LanguageInfo describes the kernel language.
type LanguageInfo struct {
	Name string `json:"name"`
}

// Language returns the declared kernel language, or "" if none is declared.
// language_info wins over kernelspec since kernels fill it at run time.
func (m Metadata) Language() string {
	if m.LanguageInfo.Name != "" {
		return m.LanguageInfo.Name
	}
	return m.KernelSpec.Language
}

// Attachments maps attachment names to their MIME bundles.
type Attachments map[string]MIMEBundle

// Cell is one notebook cell. Attachments is only meaningful for markdown
// cells and Outputs only for code cells.
type Cell struct {
	Type        CellType
	Source      string
	Attachments Attachments
	Outputs     []Output
}

// Output is one output record of an executed code cell.
type Output struct {
	OutputType string
	Name       string     // stream name: stdout, stderr
	Text       string     // stream text
	Data       MIMEBundle // execute_result, display_data
	Traceback  string     // error, lines joined with "\n"
	EName      string
	EValue     string
}

type rawCell struct {
	CellType    string          `json:"cell_type"`
	Source      Text            `json:"source"`
	Attachments json.RawMessage `json:"attachments"`
	Outputs     json.RawMessage `json:"outputs"`
}

type rawOutput struct {
	OutputType string     `json:"output_type"`
	Name       string     `json:"name"`
	Text       Text       `json:"text"`
	Data       MIMEBundle `json:"data"`
	Traceback  Lines      `json:"traceback"`
	EName      string     `json:"ename"`
	EValue     string     `json:"evalue"`
}

// ReadFile reads and parses the notebook at path.
func ReadFile(path string) (*Notebook, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller-provided notebook path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadNotebook, err)
	}

	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Parse decodes notebook JSON. Only syntactically invalid JSON is an error.
func Parse(data []byte) (*Notebook, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	nb := &Notebook{}

	// Top-level fields are decoded one by one so a mistyped field never
	// hides the others.
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		// Valid JSON that is not an object.
		return nb, nil
	}

	if v, ok := top["nbformat"]; ok {
		_ = json.Unmarshal(v, &nb.NBFormat)
	}
	if v, ok := top["nbformat_minor"]; ok {
		_ = json.Unmarshal(v, &nb.NBFormatMinor)
	}
	if v, ok := top["metadata"]; ok {
		_ = json.Unmarshal(v, &nb.Metadata)
	}

	rawCells, ok := top["cells"]
	if !ok || !isArray(rawCells) {
		return nb, nil
	}

	var cells []json.RawMessage
	if err := json.Unmarshal(rawCells, &cells); err != nil {
		return nb, nil
	}

	nb.HasCells = true
	nb.Cells = make([]Cell, 0, len(cells))
	for _, c := range cells {
		nb.Cells = append(nb.Cells, decodeCell(c))
	}
	return nb, nil
}

// decodeCell decodes one cell. A cell that cannot be decoded becomes a
// cell of unknown type.
func decodeCell(data json.RawMessage) Cell {
	var rc rawCell
	if err := json.Unmarshal(data, &rc); err != nil {
		return Cell{}
	}

	cell := Cell{
		Type:   CellType(rc.CellType),
		Source: string(rc.Source),
	}

	if len(rc.Attachments) > 0 {
		var att Attachments
		if err := json.Unmarshal(rc.Attachments, &att); err == nil {
			cell.Attachments = att
		}
	}

	if isArray(rc.Outputs) {
		var outputs []json.RawMessage
		if err := json.Unmarshal(rc.Outputs, &outputs); err == nil {
			cell.Outputs = make([]Output, 0, len(outputs))
			for _, o := range outputs {
				cell.Outputs = append(cell.Outputs, decodeOutput(o))
			}
		}
	}

	return cell
}

// decodeOutput decodes one output record. Undecodable records get an empty
// output type and are skipped by renderers.
func decodeOutput(data json.RawMessage) Output {
	var ro rawOutput
	if err := json.Unmarshal(data, &ro); err != nil {
		return Output{}
	}
	return Output{
		OutputType: ro.OutputType,
		Name:       ro.Name,
		Text:       string(ro.Text),
		Data:       ro.Data,
		Traceback:  string(ro.Traceback),
		EName:      ro.EName,
		EValue:     ro.EValue,
	}
}

func isArray(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
