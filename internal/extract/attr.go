package extract

import (
	"encoding/json"

	"github.com/born-ml/onnxmeta/internal/onnx"
)

// AttrKind identifies the payload shape of a node attribute.
type AttrKind string

// Attribute kinds, mirroring the ONNX AttributeProto type enum.
const (
	AttrUndefined AttrKind = "UNDEFINED"
	AttrFloat     AttrKind = "FLOAT"
	AttrInt       AttrKind = "INT"
	AttrString    AttrKind = "STRING"
	AttrTensor    AttrKind = "TENSOR"
	AttrGraph     AttrKind = "GRAPH"
	AttrFloats    AttrKind = "FLOATS"
	AttrInts      AttrKind = "INTS"
	AttrStrings   AttrKind = "STRINGS"
	AttrTensors   AttrKind = "TENSORS"
	AttrGraphs    AttrKind = "GRAPHS"
)

// AttrValue is a tagged variant holding one decoded node-attribute value.
// The attribute payload is genuinely polymorphic in the ONNX schema (scalar
// number, text, tensor, or list thereof), so the union is modelled explicitly
// rather than flattened.
type AttrValue struct {
	Kind    AttrKind
	payload any
}

// Value returns the decoded payload: float32, int64, string, an ordered
// tensor summary, a slice of one of these, or nil for kinds the decoder does
// not carry a payload for.
func (v AttrValue) Value() any {
	return v.payload
}

// MarshalJSON emits the bare payload so attribute values keep their natural
// JSON shapes inside the report.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.payload)
}

// attrValue decodes one AttributeProto into the tagged variant, switching on
// the declared type tag.
func attrValue(attr *onnx.AttributeProto) AttrValue {
	switch attr.Type {
	case onnx.AttributeProtoFloat:
		return AttrValue{Kind: AttrFloat, payload: attr.F}
	case onnx.AttributeProtoInt:
		return AttrValue{Kind: AttrInt, payload: attr.I}
	case onnx.AttributeProtoString:
		return AttrValue{Kind: AttrString, payload: string(attr.S)}
	case onnx.AttributeProtoTensor:
		if attr.T == nil {
			return AttrValue{Kind: AttrTensor}
		}
		return AttrValue{Kind: AttrTensor, payload: tensorSummary(attr.T)}
	case onnx.AttributeProtoGraph:
		// Subgraph payloads are not decoded.
		return AttrValue{Kind: AttrGraph}
	case onnx.AttributeProtoFloats:
		floats := make([]float32, 0, len(attr.Floats))
		floats = append(floats, attr.Floats...)
		return AttrValue{Kind: AttrFloats, payload: floats}
	case onnx.AttributeProtoInts:
		ints := make([]int64, 0, len(attr.Ints))
		ints = append(ints, attr.Ints...)
		return AttrValue{Kind: AttrInts, payload: ints}
	case onnx.AttributeProtoStrings:
		strs := make([]string, 0, len(attr.Strings))
		for _, s := range attr.Strings {
			strs = append(strs, string(s))
		}
		return AttrValue{Kind: AttrStrings, payload: strs}
	case onnx.AttributeProtoTensors:
		return AttrValue{Kind: AttrTensors}
	case onnx.AttributeProtoGraphs:
		return AttrValue{Kind: AttrGraphs}
	default:
		return AttrValue{Kind: AttrUndefined}
	}
}
