package extract

import (
	"encoding/json"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/onnxmeta/internal/onnx"
)

// marshalSection renders one value as JSON for shape assertions.
func marshalSection(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// TestTensorTypeName_Table verifies the fixed code-to-name table.
func TestTensorTypeName_Table(t *testing.T) {
	want := map[int32]string{
		1:  "FLOAT",
		2:  "UINT8",
		3:  "INT8",
		4:  "UINT16",
		5:  "INT16",
		6:  "INT32",
		7:  "INT64",
		8:  "STRING",
		9:  "BOOL",
		10: "FLOAT16",
		11: "DOUBLE",
		12: "UINT32",
		13: "UINT64",
		14: "COMPLEX64",
		15: "COMPLEX128",
		16: "BFLOAT16",
	}
	for code, name := range want {
		assert.Equal(t, name, TensorTypeName(code), "code %d", code)
	}
}

// TestTensorTypeName_Unknown verifies totality outside the table.
func TestTensorTypeName_Unknown(t *testing.T) {
	for _, code := range []int32{0, -1, 17, 99, -42} {
		assert.Equal(t, "UNKNOWN", TensorTypeName(code), "code %d", code)
	}
}

// TestModelInfo verifies identity fields, including verbatim empty strings.
func TestModelInfo(t *testing.T) {
	m := &onnx.ModelProto{
		IRVersion:       8,
		ProducerName:    "pytorch",
		ProducerVersion: "2.1.0",
		DocString:       "a test model",
		Graph:           &onnx.GraphProto{Name: "net"},
	}

	got := marshalSection(t, modelInfo(m))
	assert.JSONEq(t, `{
		"Model Name": "net",
		"Version": 8,
		"Producer Name": "pytorch",
		"Producer Version": "2.1.0",
		"Description": "a test model",
		"Domain": ""
	}`, got)
}

// TestIOSpecs_ShapePlaceholder verifies the "?" placeholder for unresolved
// dimensions and the integer form for declared ones.
func TestIOSpecs_ShapePlaceholder(t *testing.T) {
	vis := []onnx.ValueInfoProto{
		{
			Name: "x",
			Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{
				ElemType: onnx.TensorProtoFloat,
				Shape: &onnx.TensorShapeProto{Dims: []onnx.DimensionProto{
					{DimParam: "batch"}, // symbolic
					{DimValue: 0},       // declared but unset
					{DimValue: 224},
				}},
			}},
			DocString: "input image",
		},
	}

	got := marshalSection(t, ioSpecs(vis))
	assert.JSONEq(t, `{
		"x": {"Data Type": "FLOAT", "Shape": ["?", "?", 224], "Documentation": "input image"}
	}`, got)
}

// TestIOSpecs_MissingType verifies defaults when type info is absent.
func TestIOSpecs_MissingType(t *testing.T) {
	vis := []onnx.ValueInfoProto{{Name: "y"}}

	got := marshalSection(t, ioSpecs(vis))
	assert.JSONEq(t, `{
		"y": {"Data Type": "UNKNOWN", "Shape": [], "Documentation": ""}
	}`, got)
}

// TestIOSpecs_DuplicateNames verifies last-write-wins on repeated names.
func TestIOSpecs_DuplicateNames(t *testing.T) {
	vis := []onnx.ValueInfoProto{
		{Name: "x", Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{ElemType: onnx.TensorProtoFloat}}},
		{Name: "x", Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{ElemType: onnx.TensorProtoInt64}}},
	}

	specs := ioSpecs(vis)
	assert.Len(t, specs.Keys(), 1)

	got := marshalSection(t, specs)
	assert.JSONEq(t, `{
		"x": {"Data Type": "INT64", "Shape": [], "Documentation": ""}
	}`, got)
}

// TestCustomMetadata_LastWriteWins verifies duplicate-key overwrite.
func TestCustomMetadata_LastWriteWins(t *testing.T) {
	m := &onnx.ModelProto{MetadataProps: []onnx.StringStringEntry{
		{Key: "k", Value: "a"},
		{Key: "k", Value: "b"},
	}}

	meta := customMetadata(m)
	v, ok := meta.Get("k")
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, []string{"k"}, meta.Keys())
}

// TestCustomMetadata_Empty verifies an empty section marshals as {}.
func TestCustomMetadata_Empty(t *testing.T) {
	got := marshalSection(t, customMetadata(&onnx.ModelProto{}))
	assert.JSONEq(t, `{}`, got)
}

// TestAdditionalAttributes_Opsets verifies the implicit default-domain key
// and duplicate-domain overwrite.
func TestAdditionalAttributes_Opsets(t *testing.T) {
	m := &onnx.ModelProto{OpsetImport: []onnx.OperatorSetID{
		{Domain: "", Version: 12},
		{Domain: "com.microsoft", Version: 1},
		{Domain: "", Version: 13},
	}}

	additional := additionalAttributes(m)
	opsets, ok := additional.Get("Opset Versions")
	require.True(t, ok)

	got := marshalSection(t, opsets)
	assert.JSONEq(t, `{"ai.onnx": 13, "com.microsoft": 1}`, got)
}

// TestAdditionalAttributes_LicenseExactMatch verifies the exact
// case-insensitive license key rule: "License" matches, "LicenseInfo" does not.
func TestAdditionalAttributes_LicenseExactMatch(t *testing.T) {
	m := &onnx.ModelProto{MetadataProps: []onnx.StringStringEntry{
		{Key: "LicenseInfo", Value: "ignored"},
		{Key: "License", Value: "Apache-2.0"},
	}}

	additional := additionalAttributes(m)
	v, ok := additional.Get("License Information")
	require.True(t, ok)
	assert.Equal(t, "Apache-2.0", v)
}

// TestAdditionalAttributes_LicenseLastMatchWins verifies the last matching
// property is kept.
func TestAdditionalAttributes_LicenseLastMatchWins(t *testing.T) {
	m := &onnx.ModelProto{MetadataProps: []onnx.StringStringEntry{
		{Key: "license", Value: "MIT"},
		{Key: "LICENSE", Value: "BSD-3-Clause"},
	}}

	additional := additionalAttributes(m)
	v, _ := additional.Get("License Information")
	assert.Equal(t, "BSD-3-Clause", v)
}

// TestAdditionalAttributes_FrameworkSubstring verifies the broader substring
// rule for the training framework.
func TestAdditionalAttributes_FrameworkSubstring(t *testing.T) {
	m := &onnx.ModelProto{MetadataProps: []onnx.StringStringEntry{
		{Key: "training_framework_used", Value: "pytorch"},
	}}

	additional := additionalAttributes(m)
	v, ok := additional.Get("Training Framework")
	require.True(t, ok)
	assert.Equal(t, "pytorch", v)
}

// TestAdditionalAttributes_NoMatches verifies empty text when nothing matches.
func TestAdditionalAttributes_NoMatches(t *testing.T) {
	m := &onnx.ModelProto{MetadataProps: []onnx.StringStringEntry{
		{Key: "author", Value: "someone"},
	}}

	additional := additionalAttributes(m)
	license, _ := additional.Get("License Information")
	framework, _ := additional.Get("Training Framework")
	assert.Equal(t, "", license)
	assert.Equal(t, "", framework)
}

// TestTensorSummary_FloatValues verifies FLOAT tensors read the float-valued
// field even when the int64-valued field is non-empty.
func TestTensorSummary_FloatValues(t *testing.T) {
	tensor := &onnx.TensorProto{
		Name:      "w",
		DataType:  onnx.TensorProtoFloat,
		Dims:      []int64{2},
		FloatData: []float32{1.5, 2.5},
		Int64Data: []int64{9, 9},
	}

	got := marshalSection(t, tensorSummary(tensor))
	assert.JSONEq(t, `{"Data Type": "FLOAT", "Shape": [2], "Values": [1.5, 2.5]}`, got)
}

// TestTensorSummary_NonFloatValues verifies every other datatype reads the
// int64-valued field, which may be empty when the payload lives elsewhere.
func TestTensorSummary_NonFloatValues(t *testing.T) {
	tensor := &onnx.TensorProto{
		Name:      "idx",
		DataType:  onnx.TensorProtoInt64,
		Dims:      []int64{3},
		Int64Data: []int64{4, 5, 6},
	}
	got := marshalSection(t, tensorSummary(tensor))
	assert.JSONEq(t, `{"Data Type": "INT64", "Shape": [3], "Values": [4, 5, 6]}`, got)

	// DOUBLE tensor stored in raw bytes: Values stays empty.
	raw := &onnx.TensorProto{
		Name:     "d",
		DataType: onnx.TensorProtoDouble,
		Dims:     []int64{1},
		RawData:  []byte{0, 0, 0, 0, 0, 0, 0xf0, 0x3f},
	}
	got = marshalSection(t, tensorSummary(raw))
	assert.JSONEq(t, `{"Data Type": "DOUBLE", "Shape": [1], "Values": []}`, got)
}

// TestAttrValue_Kinds verifies the tagged variant decoding per declared kind.
func TestAttrValue_Kinds(t *testing.T) {
	cases := []struct {
		name string
		attr onnx.AttributeProto
		kind AttrKind
		json string
	}{
		{"float", onnx.AttributeProto{Type: onnx.AttributeProtoFloat, F: 0.5}, AttrFloat, `0.5`},
		{"int", onnx.AttributeProto{Type: onnx.AttributeProtoInt, I: 42}, AttrInt, `42`},
		{"string", onnx.AttributeProto{Type: onnx.AttributeProtoString, S: []byte("same")}, AttrString, `"same"`},
		{"floats", onnx.AttributeProto{Type: onnx.AttributeProtoFloats, Floats: []float32{1, 2}}, AttrFloats, `[1, 2]`},
		{"ints", onnx.AttributeProto{Type: onnx.AttributeProtoInts, Ints: []int64{3, 3}}, AttrInts, `[3, 3]`},
		{"strings", onnx.AttributeProto{Type: onnx.AttributeProtoStrings, Strings: [][]byte{[]byte("a"), []byte("b")}}, AttrStrings, `["a", "b"]`},
		{"undefined", onnx.AttributeProto{Type: onnx.AttributeProtoUndefined}, AttrUndefined, `null`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := attrValue(&tc.attr)
			assert.Equal(t, tc.kind, v.Kind)
			assert.JSONEq(t, tc.json, marshalSection(t, v))
		})
	}
}

// TestAttrValue_Tensor verifies tensor attributes emit a structured summary.
func TestAttrValue_Tensor(t *testing.T) {
	attr := onnx.AttributeProto{
		Type: onnx.AttributeProtoTensor,
		T: &onnx.TensorProto{
			DataType:  onnx.TensorProtoFloat,
			Dims:      []int64{2},
			FloatData: []float32{1.5, 2.5},
		},
	}

	v := attrValue(&attr)
	assert.Equal(t, AttrTensor, v.Kind)
	assert.JSONEq(t, `{"Data Type": "FLOAT", "Shape": [2], "Values": [1.5, 2.5]}`, marshalSection(t, v))
}

// TestGraphStructure verifies node entries, initializers, and name lists.
func TestGraphStructure(t *testing.T) {
	g := &onnx.GraphProto{
		Name: "g",
		Nodes: []onnx.NodeProto{
			{
				Name:    "conv1",
				OpType:  "Conv",
				Inputs:  []string{"x", "w"},
				Outputs: []string{"h"},
				Attributes: []onnx.AttributeProto{
					{Name: "kernel_shape", Type: onnx.AttributeProtoInts, Ints: []int64{3, 3}},
				},
			},
			{OpType: "Relu", Inputs: []string{"h"}, Outputs: []string{"y"}},
		},
		Initializers: []onnx.TensorProto{
			{Name: "w", DataType: onnx.TensorProtoFloat, Dims: []int64{1, 1, 3, 3}, FloatData: make([]float32, 9)},
		},
		Inputs:  []onnx.ValueInfoProto{{Name: "x"}},
		Outputs: []onnx.ValueInfoProto{{Name: "y"}},
	}

	structure := graphStructure(g)
	got := marshalSection(t, structure)
	assert.JSONEq(t, `{
		"Nodes": [
			{
				"Name": "conv1",
				"Op Type": "Conv",
				"Inputs": ["x", "w"],
				"Outputs": ["h"],
				"Attributes": {"kernel_shape": [3, 3]}
			},
			{
				"Name": "",
				"Op Type": "Relu",
				"Inputs": ["h"],
				"Outputs": ["y"],
				"Attributes": {}
			}
		],
		"Initializers": {
			"w": {"Data Type": "FLOAT", "Shape": [1, 1, 3, 3], "Values": [0, 0, 0, 0, 0, 0, 0, 0, 0]}
		},
		"Inputs": ["x"],
		"Outputs": ["y"]
	}`, got)
}

// TestGraphStructure_NilGraph verifies empty sequences for a model without a
// graph.
func TestGraphStructure_NilGraph(t *testing.T) {
	got := marshalSection(t, graphStructure(nil))
	assert.JSONEq(t, `{"Nodes": [], "Initializers": {}, "Inputs": [], "Outputs": []}`, got)
}

// TestReport_SectionOrder verifies the fixed top-level section order.
func TestReport_SectionOrder(t *testing.T) {
	report := Report(&onnx.ModelProto{})
	assert.Equal(t, []string{
		"Model Information",
		"Input Specifications",
		"Output Specifications",
		"Custom Metadata",
		"Additional Attributes",
		"Graph Structure",
	}, report.Keys())
}

// TestReport_MinimalModel verifies the round-trip scenario: one Identity node
// from x to y, opset 13 on the default domain, IR version 8.
func TestReport_MinimalModel(t *testing.T) {
	shape := &onnx.TensorShapeProto{Dims: []onnx.DimensionProto{{DimValue: 1}, {DimValue: 3}}}
	m := &onnx.ModelProto{
		IRVersion:   8,
		OpsetImport: []onnx.OperatorSetID{{Domain: "", Version: 13}},
		Graph: &onnx.GraphProto{
			Name: "minimal",
			Nodes: []onnx.NodeProto{
				{OpType: "Identity", Inputs: []string{"x"}, Outputs: []string{"y"}},
			},
			Inputs: []onnx.ValueInfoProto{
				{Name: "x", Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{ElemType: onnx.TensorProtoFloat, Shape: shape}}},
			},
			Outputs: []onnx.ValueInfoProto{
				{Name: "y", Type: &onnx.TypeProto{TensorType: &onnx.TensorTypeProto{ElemType: onnx.TensorProtoFloat, Shape: shape}}},
			},
		},
	}

	report := Report(m)

	inputSpecs, ok := report.Get("Input Specifications")
	require.True(t, ok)
	assert.JSONEq(t, `{
		"x": {"Data Type": "FLOAT", "Shape": [1, 3], "Documentation": ""}
	}`, marshalSection(t, inputSpecs))

	additional, ok := report.Get("Additional Attributes")
	require.True(t, ok)
	am, ok := additional.(*orderedmap.OrderedMap)
	require.True(t, ok)
	opsets, ok := am.Get("Opset Versions")
	require.True(t, ok)
	assert.JSONEq(t, `{"ai.onnx": 13}`, marshalSection(t, opsets))
}
