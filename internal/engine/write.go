package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/Venefilyn/cockpit-bootc/codec"
)

// AppendJSON appends the JSON text of v to dst. A non-empty indent
// produces one member per line, nested by indent. Object keys keep their
// insertion order.
func AppendJSON(dst []byte, v any, indent string) ([]byte, error) {
	w := &jsonWriter{}
	if err := w.value(v); err != nil {
		return nil, err
	}
	if indent == "" {
		return append(dst, w.buf...), nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, w.buf, "", indent); err != nil {
		return nil, err
	}
	return append(dst, out.Bytes()...), nil
}

// jsonWriter emits compact JSON for the dynamic value model.
type jsonWriter struct {
	buf []byte
}

func (w *jsonWriter) value(v any) error {
	switch t := v.(type) {
	case nil:
		w.buf = append(w.buf, "null"...)
	case bool:
		w.buf = strconv.AppendBool(w.buf, t)
	case string:
		return w.str(t)
	case json.Number:
		if _, err := strconv.ParseFloat(string(t), 64); err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("invalid number %q", string(t))
		}
		w.buf = append(w.buf, t...)
	case time.Time:
		return w.str(codec.FormatDateTime(t))
	case *Object:
		w.buf = append(w.buf, '{')
		for i, k := range t.Keys() {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			if err := w.str(k); err != nil {
				return err
			}
			w.buf = append(w.buf, ':')
			if err := w.value(t.vals[k]); err != nil {
				return err
			}
		}
		w.buf = append(w.buf, '}')
	case []any:
		w.buf = append(w.buf, '[')
		for i, e := range t {
			if i > 0 {
				w.buf = append(w.buf, ',')
			}
			if err := w.value(e); err != nil {
				return err
			}
		}
		w.buf = append(w.buf, ']')
	default:
		if isNumber(v) {
			text, err := formatNumber(v)
			if err != nil {
				return err
			}
			w.buf = append(w.buf, text...)
			return nil
		}
		data, err := json.MarshalNoEscape(v)
		if err != nil {
			return err
		}
		w.buf = append(w.buf, data...)
	}
	return nil
}

func (w *jsonWriter) str(s string) error {
	data, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	w.buf = append(w.buf, data...)
	return nil
}
