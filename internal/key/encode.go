package key

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// EncodingError reports a key that cannot be represented in the canonical
// encoding. It is returned before any write is attempted.
type EncodingError struct {
	// Value is the offending (sub)value.
	Value any

	// Reason describes why the value is not encodable.
	Reason string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("key not encodable: %s (%T)", e.Reason, e.Value)
}

// Encode returns the canonical encoding of a key. The result contains no
// newlines, so it is usable both as a table row value and as a log line
// payload. The same logical key always encodes to the same bytes.
func Encode(v any) (string, error) {
	b, err := encode(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encode(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, &EncodingError{Value: v, Reason: "null is not a valid key"}
	case string:
		return encodeString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int8:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int16:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int32:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(nil, val, 10), nil
	case uint:
		return strconv.AppendUint(nil, uint64(val), 10), nil
	case uint8:
		return strconv.AppendUint(nil, uint64(val), 10), nil
	case uint16:
		return strconv.AppendUint(nil, uint64(val), 10), nil
	case uint32:
		return strconv.AppendUint(nil, uint64(val), 10), nil
	case uint64:
		return strconv.AppendUint(nil, val, 10), nil
	case float32, float64:
		return nil, &EncodingError{Value: v, Reason: "floats have no stable canonical form"}
	case json.Number:
		// Integral numbers decoded with UseNumber keep their exact text.
		if n, err := val.Int64(); err == nil {
			return strconv.AppendInt(nil, n, 10), nil
		}
		return nil, &EncodingError{Value: v, Reason: "non-integer number has no stable canonical form"}
	case []string:
		elems := make([]any, len(val))
		for i, s := range val {
			elems[i] = s
		}
		return encodeArray(elems)
	case []any:
		return encodeArray(val)
	case map[string]any:
		return encodeObject(val)
	default:
		return nil, &EncodingError{Value: v, Reason: "unsupported key type"}
	}
}

func encodeArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := encode(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func encodeObject(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range sortedKeys(obj) {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := encodeString(k)
		if err != nil {
			return nil, fmt.Errorf("object key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := encode(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeString produces a canonical JSON string literal.
//
// NFC normalization happens here, at the serialization boundary, so callers
// never see an un-normalized identity. HTML escaping is disabled: <, >, &
// must appear literally for the encoding to match RFC 8785.
func encodeString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, &EncodingError{Value: s, Reason: err.Error()}
	}

	// json.Encoder appends a trailing newline.
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return unescapeLineSeparators(out), nil
}

// unescapeLineSeparators rewrites backslash-u2028 and backslash-u2029
// escapes to the literal
// characters. Go's encoder escapes them for JavaScript embedding, which
// RFC 8785 forbids. A sequence preceded by an odd run of backslashes is a
// literal backslash followed by the text "u2028" and must stay as written.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if i+6 <= len(data) && data[i] == '\\' && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			backslashes := 0
			for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				if data[i+5] == '8' {
					out = append(out, "\u2028"...)
				} else {
					out = append(out, "\u2029"...)
				}
				i += 6
				continue
			}
		}
		out = append(out, data[i])
		i++
	}
	return out
}

// sortedKeys returns map keys in UTF-16 code unit order. Plain string
// comparison sorts by UTF-8 bytes, which disagrees with RFC 8785 for
// characters outside the BMP.
func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	n := len(a16)
	if len(b16) < n {
		n = len(b16)
	}
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
