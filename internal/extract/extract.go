package extract

import (
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/born-ml/onnxmeta/internal/onnx"
)

// tensorTypeNames maps ONNX element type codes to canonical names.
var tensorTypeNames = map[int32]string{
	onnx.TensorProtoFloat:      "FLOAT",
	onnx.TensorProtoUint8:      "UINT8",
	onnx.TensorProtoInt8:       "INT8",
	onnx.TensorProtoUint16:     "UINT16",
	onnx.TensorProtoInt16:      "INT16",
	onnx.TensorProtoInt32:      "INT32",
	onnx.TensorProtoInt64:      "INT64",
	onnx.TensorProtoString:     "STRING",
	onnx.TensorProtoBool:       "BOOL",
	onnx.TensorProtoFloat16:    "FLOAT16",
	onnx.TensorProtoDouble:     "DOUBLE",
	onnx.TensorProtoUint32:     "UINT32",
	onnx.TensorProtoUint64:     "UINT64",
	onnx.TensorProtoComplex64:  "COMPLEX64",
	onnx.TensorProtoComplex128: "COMPLEX128",
	onnx.TensorProtoBfloat16:   "BFLOAT16",
}

// TensorTypeName converts an ONNX element type code to a readable name.
// Unrecognized codes map to "UNKNOWN".
func TensorTypeName(code int32) string {
	if name, ok := tensorTypeNames[code]; ok {
		return name
	}
	return "UNKNOWN"
}

// Report assembles the full metadata report from a parsed model. Sections
// appear in a fixed order; each mapper contributes one top-level key.
func Report(m *onnx.ModelProto) *orderedmap.OrderedMap {
	var inputs, outputs []onnx.ValueInfoProto
	if m.Graph != nil {
		inputs = m.Graph.Inputs
		outputs = m.Graph.Outputs
	}

	report := orderedmap.New()
	report.Set("Model Information", modelInfo(m))
	report.Set("Input Specifications", ioSpecs(inputs))
	report.Set("Output Specifications", ioSpecs(outputs))
	report.Set("Custom Metadata", customMetadata(m))
	report.Set("Additional Attributes", additionalAttributes(m))
	report.Set("Graph Structure", graphStructure(m.Graph))
	return report
}

// modelInfo extracts general model identity fields. Empty strings pass
// through verbatim.
func modelInfo(m *onnx.ModelProto) *orderedmap.OrderedMap {
	graphName := ""
	if m.Graph != nil {
		graphName = m.Graph.Name
	}

	info := orderedmap.New()
	info.Set("Model Name", graphName)
	info.Set("Version", m.IRVersion)
	info.Set("Producer Name", m.ProducerName)
	info.Set("Producer Version", m.ProducerVersion)
	info.Set("Description", m.DocString)
	info.Set("Domain", m.Domain)
	return info
}

// ioSpecs extracts per-tensor specifications for graph inputs or outputs,
// keyed by tensor name in declaration order (last wins on repeats).
func ioSpecs(vis []onnx.ValueInfoProto) *orderedmap.OrderedMap {
	specs := orderedmap.New()
	for i := range vis {
		vi := &vis[i]

		var elemType int32
		shape := []any{}
		if vi.Type != nil && vi.Type.TensorType != nil {
			elemType = vi.Type.TensorType.ElemType
			if vi.Type.TensorType.Shape != nil {
				for _, dim := range vi.Type.TensorType.Shape.Dims {
					if dim.DimValue > 0 {
						shape = append(shape, dim.DimValue)
					} else {
						shape = append(shape, "?") // unknown or symbolic dimension
					}
				}
			}
		}

		spec := orderedmap.New()
		spec.Set("Data Type", TensorTypeName(elemType))
		spec.Set("Shape", shape)
		spec.Set("Documentation", vi.DocString)
		specs.Set(vi.Name, spec)
	}
	return specs
}

// customMetadata extracts the model's key/value metadata properties.
// Duplicate keys resolve last-write-wins.
func customMetadata(m *onnx.ModelProto) *orderedmap.OrderedMap {
	meta := orderedmap.New()
	for _, prop := range m.MetadataProps {
		meta.Set(prop.Key, prop.Value)
	}
	return meta
}

// additionalAttributes extracts opset versions, version/producer fields, and
// the license/framework values located in the custom metadata by key name.
// The license lookup is an exact case-insensitive match while the framework
// lookup is a substring match; the asymmetry is intentional.
func additionalAttributes(m *onnx.ModelProto) *orderedmap.OrderedMap {
	opsets := orderedmap.New()
	for _, opset := range m.OpsetImport {
		domain := opset.Domain
		if domain == "" {
			domain = "ai.onnx" // implicit default domain
		}
		opsets.Set(domain, opset.Version)
	}

	licenseInfo := ""
	trainingFramework := ""
	for _, prop := range m.MetadataProps {
		key := strings.ToLower(prop.Key)
		if key == "license" {
			licenseInfo = prop.Value
		} else if strings.Contains(key, "framework") {
			trainingFramework = prop.Value
		}
	}

	additional := orderedmap.New()
	additional.Set("Opset Versions", opsets)
	additional.Set("IR Version", m.IRVersion)
	additional.Set("Producer Name", m.ProducerName)
	additional.Set("Producer Version", m.ProducerVersion)
	additional.Set("License Information", licenseInfo)
	additional.Set("Training Framework", trainingFramework)
	return additional
}

// graphStructure extracts the node list, initializer tensors, and top-level
// input/output name lists.
func graphStructure(g *onnx.GraphProto) *orderedmap.OrderedMap {
	nodes := []*orderedmap.OrderedMap{}
	initializers := orderedmap.New()
	inputs := []string{}
	outputs := []string{}

	if g != nil {
		for i := range g.Nodes {
			node := &g.Nodes[i]

			nodeInputs := make([]string, 0, len(node.Inputs))
			nodeInputs = append(nodeInputs, node.Inputs...)
			nodeOutputs := make([]string, 0, len(node.Outputs))
			nodeOutputs = append(nodeOutputs, node.Outputs...)

			attrs := orderedmap.New()
			for j := range node.Attributes {
				attrs.Set(node.Attributes[j].Name, attrValue(&node.Attributes[j]))
			}

			entry := orderedmap.New()
			entry.Set("Name", node.Name)
			entry.Set("Op Type", node.OpType)
			entry.Set("Inputs", nodeInputs)
			entry.Set("Outputs", nodeOutputs)
			entry.Set("Attributes", attrs)
			nodes = append(nodes, entry)
		}

		for i := range g.Initializers {
			init := &g.Initializers[i]
			initializers.Set(init.Name, tensorSummary(init))
		}

		for i := range g.Inputs {
			inputs = append(inputs, g.Inputs[i].Name)
		}
		for i := range g.Outputs {
			outputs = append(outputs, g.Outputs[i].Name)
		}
	}

	structure := orderedmap.New()
	structure.Set("Nodes", nodes)
	structure.Set("Initializers", initializers)
	structure.Set("Inputs", inputs)
	structure.Set("Outputs", outputs)
	return structure
}

// tensorSummary describes one constant tensor: element type, declared shape,
// and raw values. Values come from the float-valued field only for FLOAT
// tensors and from the int64-valued field for everything else, so tensors
// stored in other encodings (raw bytes included) yield an empty list. That
// mirrors the split-by-type storage convention of the format and is part of
// the report's output contract.
func tensorSummary(t *onnx.TensorProto) *orderedmap.OrderedMap {
	dims := make([]int64, 0, len(t.Dims))
	dims = append(dims, t.Dims...)

	var values any
	if t.DataType == onnx.TensorProtoFloat {
		floats := make([]float32, 0, len(t.FloatData))
		floats = append(floats, t.FloatData...)
		values = floats
	} else {
		ints := make([]int64, 0, len(t.Int64Data))
		ints = append(ints, t.Int64Data...)
		values = ints
	}

	summary := orderedmap.New()
	summary.Set("Data Type", TensorTypeName(t.DataType))
	summary.Set("Shape", dims)
	summary.Set("Values", values)
	return summary
}
