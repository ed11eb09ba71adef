package translation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrRootNotObject is returned by Parse when the document is valid JSON but
// its top-level value is not an object.
var ErrRootNotObject = errors.New("translation root must be a JSON object")

// Parse decodes a translation document. Key order is preserved at every level.
func Parse(data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("invalid translation JSON: empty document")
	}
	if !json.Valid(trimmed) {
		// Let encoding/json produce the positional error message.
		var v any
		err := json.Unmarshal(trimmed, &v)
		return nil, fmt.Errorf("invalid translation JSON: %w", err)
	}
	if trimmed[0] != '{' {
		return nil, ErrRootNotObject
	}
	root, err := decodeValue(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid translation JSON: %w", err)
	}
	return root, nil
}

func decodeValue(data []byte) (*Node, error) {
	switch data[0] {
	case '{':
		return decodeGroup(data)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return NewLeaf(s), nil
	default:
		var compact bytes.Buffer
		if err := json.Compact(&compact, data); err != nil {
			return nil, err
		}
		return newOther(compact.Bytes()), nil
	}
}

func decodeGroup(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	group := NewGroup()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		child, err := decodeValue(bytes.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		group.Set(key, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return group, nil
}

// Marshal encodes a tree as JSON indented with two spaces. HTML characters are
// not escaped and no trailing newline is written.
func Marshal(root *Node) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeNode(&compact, root); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func writeNode(buf *bytes.Buffer, n *Node) error {
	switch n.kind {
	case KindLeaf:
		return writeString(buf, n.value)
	case KindOther:
		buf.Write(n.raw)
		return nil
	}

	buf.WriteByte('{')
	first := true
	for pair := n.children.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeString(buf, pair.Key); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeNode(buf, pair.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(unescapeLineSeparators(bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))))
	return nil
}

// unescapeLineSeparators undoes the \u2028 and \u2029 escapes encoding/json
// always emits, so untouched leaves keep their original bytes. Escape pairs
// are consumed two bytes at a time, which leaves an escaped backslash
// followed by "u2028" alone.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if i+5 < len(b) && b[i+1] == 'u' && string(b[i+2:i+5]) == "202" && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
