// Package onnx provides read-only decoding of ONNX model files.
//
// ONNX (Open Neural Network Exchange) is an open format for representing deep learning models.
// This package decodes the protobuf wire format of .onnx files into plain Go structs using
// the low-level protowire primitives, without generated protobuf bindings.
//
// Key components:
//   - ModelProto: Top-level ONNX model structure with metadata and graph
//   - GraphProto: Computation graph with nodes, inputs, outputs, and initializers
//   - NodeProto: Single operation in the graph (e.g., Conv, MatMul, Relu)
//   - TensorProto: Weight/initializer tensor with data and shape
//   - ValueInfoProto: Input/output tensor type information
//
// Only the fields needed for metadata reporting are decoded; unknown fields are skipped.
// The decoder never validates the model beyond wire-format well-formedness: referential
// integrity between node inputs/outputs, initializers, and graph inputs is trusted as-is.
//
// Example usage:
//
//	// Parse ONNX file
//	model, err := onnx.ParseFile("resnet50.onnx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Inspect model
//	fmt.Printf("Model: %s (IR version %d)\n", model.Graph.Name, model.IRVersion)
//	fmt.Printf("Graph has %d nodes\n", len(model.Graph.Nodes))
package onnx
