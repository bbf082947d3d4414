// Package extract projects a parsed ONNX model into an ordered metadata report.
//
// The report is a fixed sequence of six sections: Model Information, Input
// Specifications, Output Specifications, Custom Metadata, Additional
// Attributes, and Graph Structure. Every mapper is a pure read over the
// parsed model; nothing here mutates or validates the model, and field values
// are echoed verbatim (empty strings included).
package extract
