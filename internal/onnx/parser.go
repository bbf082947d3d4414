package onnx

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"google.golang.org/protobuf/encoding/protowire"
)

// ParseFile parses an ONNX model from file.
//
//nolint:gosec // G304: Path is provided by user, file inclusion is intentional for ONNX model loading
func ParseFile(path string) (*ModelProto, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse parses an ONNX model from bytes.
func Parse(data []byte) (*ModelProto, error) {
	model := &ModelProto{}
	if err := parseModelProto(data, model); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return model, nil
}

// parseModelProto reads ModelProto fields from the wire.
//
//nolint:gocognit,gocyclo,cyclop,funlen // Protobuf parsing requires field-by-field switch logic for all ONNX message types
func parseModelProto(b []byte, m *ModelProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // ir_version
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.IRVersion = int64(v)
			b = b[n:]
		case 2: // producer_name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ProducerName = string(v)
			b = b[n:]
		case 3: // producer_version
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ProducerVersion = string(v)
			b = b[n:]
		case 4: // domain
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Domain = string(v)
			b = b[n:]
		case 5: // model_version
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ModelVersion = int64(v)
			b = b[n:]
		case 6: // doc_string
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DocString = string(v)
			b = b[n:]
		case 7: // graph
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Graph = &GraphProto{}
			if err := parseGraphProto(v, m.Graph); err != nil {
				return err
			}
			b = b[n:]
		case 8: // opset_import
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			opset := OperatorSetID{}
			if err := parseOperatorSetID(v, &opset); err != nil {
				return err
			}
			m.OpsetImport = append(m.OpsetImport, opset)
			b = b[n:]
		case 14: // metadata_props
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			entry := StringStringEntry{}
			if err := parseStringStringEntry(v, &entry); err != nil {
				return err
			}
			m.MetadataProps = append(m.MetadataProps, entry)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseGraphProto reads GraphProto fields from the wire.
//
//nolint:gocognit,gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func parseGraphProto(b []byte, m *GraphProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // node
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			node := NodeProto{}
			if err := parseNodeProto(v, &node); err != nil {
				return err
			}
			m.Nodes = append(m.Nodes, node)
			b = b[n:]
		case 2: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 5: // initializer
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			tensor := TensorProto{}
			if err := parseTensorProto(v, &tensor); err != nil {
				return err
			}
			m.Initializers = append(m.Initializers, tensor)
			b = b[n:]
		case 10: // doc_string
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DocString = string(v)
			b = b[n:]
		case 11: // input
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			vi := ValueInfoProto{}
			if err := parseValueInfoProto(v, &vi); err != nil {
				return err
			}
			m.Inputs = append(m.Inputs, vi)
			b = b[n:]
		case 12: // output
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			vi := ValueInfoProto{}
			if err := parseValueInfoProto(v, &vi); err != nil {
				return err
			}
			m.Outputs = append(m.Outputs, vi)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseNodeProto reads NodeProto fields from the wire.
//
//nolint:gocognit,gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func parseNodeProto(b []byte, m *NodeProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // input
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Inputs = append(m.Inputs, string(v))
			b = b[n:]
		case 2: // output
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Outputs = append(m.Outputs, string(v))
			b = b[n:]
		case 3: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 4: // op_type
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.OpType = string(v)
			b = b[n:]
		case 5: // attribute
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			attr := AttributeProto{}
			if err := parseAttributeProto(v, &attr); err != nil {
				return err
			}
			m.Attributes = append(m.Attributes, attr)
			b = b[n:]
		case 6: // doc_string
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DocString = string(v)
			b = b[n:]
		case 7: // domain
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Domain = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseTensorProto reads TensorProto fields from the wire.
//
//nolint:gocognit,gocyclo,cyclop,funlen // Protobuf parsing; int conversions are safe for tensor dimensions
func parseTensorProto(b []byte, m *TensorProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // dims (repeated int64)
			if typ == protowire.BytesType {
				// packed repeated
				v, n := protowire.ConsumeBytes(b)
				if n < 0 {
					return protowire.ParseError(n)
				}
				for len(v) > 0 {
					d, dn := protowire.ConsumeVarint(v)
					if dn < 0 {
						break
					}
					m.Dims = append(m.Dims, int64(d))
					v = v[dn:]
				}
				b = b[n:]
				continue
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Dims = append(m.Dims, int64(v))
			b = b[n:]
		case 2: // data_type
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DataType = int32(v) //nolint:gosec // G115: ONNX protobuf varint fits in int32.
			b = b[n:]
		case 4: // float_data (packed)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			for i := 0; i+4 <= len(v); i += 4 {
				bits := binary.LittleEndian.Uint32(v[i:])
				m.FloatData = append(m.FloatData, math.Float32frombits(bits))
			}
			b = b[n:]
		case 5: // int32_data (packed)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			for len(v) > 0 {
				d, dn := protowire.ConsumeVarint(v)
				if dn < 0 {
					break
				}
				m.Int32Data = append(m.Int32Data, int32(d)) //nolint:gosec // G115: ONNX protobuf varint fits in int32.
				v = v[dn:]
			}
			b = b[n:]
		case 7: // int64_data (packed)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			for len(v) > 0 {
				d, dn := protowire.ConsumeVarint(v)
				if dn < 0 {
					break
				}
				m.Int64Data = append(m.Int64Data, int64(d))
				v = v[dn:]
			}
			b = b[n:]
		case 8: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 9: // raw_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.RawData = v
			b = b[n:]
		case 12: // doc_string
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DocString = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseValueInfoProto reads ValueInfoProto fields from the wire.
func parseValueInfoProto(b []byte, m *ValueInfoProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 2: // type
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Type = &TypeProto{}
			if err := parseTypeProto(v, m.Type); err != nil {
				return err
			}
			b = b[n:]
		case 3: // doc_string
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DocString = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseTypeProto reads TypeProto fields from the wire.
func parseTypeProto(b []byte, m *TypeProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // tensor_type
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.TensorType = &TensorTypeProto{}
			if err := parseTensorTypeProto(v, m.TensorType); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseTensorTypeProto reads TensorTypeProto fields from the wire.
func parseTensorTypeProto(b []byte, m *TensorTypeProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // elem_type
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.ElemType = int32(v) //nolint:gosec // G115: ONNX protobuf varint fits in int32.
			b = b[n:]
		case 2: // shape
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Shape = &TensorShapeProto{}
			if err := parseTensorShapeProto(v, m.Shape); err != nil {
				return err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseTensorShapeProto reads TensorShapeProto fields from the wire.
func parseTensorShapeProto(b []byte, m *TensorShapeProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // dim
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			dim := DimensionProto{}
			if err := parseDimensionProto(v, &dim); err != nil {
				return err
			}
			m.Dims = append(m.Dims, dim)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseDimensionProto reads DimensionProto fields from the wire.
func parseDimensionProto(b []byte, m *DimensionProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // dim_value
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DimValue = int64(v)
			b = b[n:]
		case 2: // dim_param
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DimParam = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseAttributeProto reads AttributeProto fields from the wire.
//
//nolint:gocognit,gocyclo,cyclop // Protobuf parsing requires field-by-field switch logic
func parseAttributeProto(b []byte, m *AttributeProto) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // name
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Name = string(v)
			b = b[n:]
		case 2: // f (float)
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.F = math.Float32frombits(v)
			b = b[n:]
		case 3: // i (int)
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.I = int64(v)
			b = b[n:]
		case 4: // s (bytes)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.S = v
			b = b[n:]
		case 5: // t (tensor)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.T = &TensorProto{}
			if err := parseTensorProto(v, m.T); err != nil {
				return err
			}
			b = b[n:]
		case 7: // floats (packed)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			for i := 0; i+4 <= len(v); i += 4 {
				bits := binary.LittleEndian.Uint32(v[i:])
				m.Floats = append(m.Floats, math.Float32frombits(bits))
			}
			b = b[n:]
		case 8: // ints (packed)
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			for len(v) > 0 {
				d, dn := protowire.ConsumeVarint(v)
				if dn < 0 {
					break
				}
				m.Ints = append(m.Ints, int64(d))
				v = v[dn:]
			}
			b = b[n:]
		case 9: // strings
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Strings = append(m.Strings, v)
			b = b[n:]
		case 13: // doc_string
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.DocString = string(v)
			b = b[n:]
		case 20: // type
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Type = int32(v) //nolint:gosec // G115: ONNX protobuf varint fits in int32.
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseOperatorSetID reads OperatorSetID fields from the wire.
func parseOperatorSetID(b []byte, m *OperatorSetID) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // domain
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Domain = string(v)
			b = b[n:]
		case 2: // version
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Version = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// parseStringStringEntry reads StringStringEntry fields from the wire.
func parseStringStringEntry(b []byte, m *StringStringEntry) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case 1: // key
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Key = string(v)
			b = b[n:]
		case 2: // value
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			m.Value = string(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}
