// Package metadata extracts human-readable metadata from ONNX model files.
//
// Given a path to a serialized ONNX model, it produces an ordered report
// covering model identity, input/output tensor specifications, custom
// key-value metadata, opset/versioning info, and the full computation graph
// (nodes, operator types, initializers). The report serializes to indented
// JSON with a fixed top-level section order.
//
// Example usage:
//
//	report, err := metadata.Extract("model.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := report.WriteFile("model_metadata.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// Extraction is read-only: the model is never validated beyond wire-format
// decoding, and field values are echoed verbatim.
package metadata

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iancoleman/orderedmap"

	"github.com/born-ml/onnxmeta/internal/extract"
	"github.com/born-ml/onnxmeta/internal/onnx"
)

// Report holds one extracted metadata report, ready for serialization.
type Report struct {
	sections *orderedmap.OrderedMap
}

// Extract loads an ONNX model from a file and assembles its metadata report.
func Extract(modelPath string) (*Report, error) {
	model, err := onnx.ParseFile(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load ONNX model: %w", err)
	}
	return ExtractModel(model), nil
}

// ExtractModel assembles the metadata report from an already-parsed model.
func ExtractModel(model *onnx.ModelProto) *Report {
	return &Report{sections: extract.Report(model)}
}

// Sections returns the ordered top-level report sections.
func (r *Report) Sections() *orderedmap.OrderedMap {
	return r.sections
}

// JSON renders the report as 4-space-indented JSON. Output is deterministic:
// the same model yields byte-identical bytes on every call.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r.sections, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the JSON report to the given path. Either the full report
// is written or an error is returned.
func (r *Report) WriteFile(path string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: report is not sensitive
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
