package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var jsonNull = []byte("null")

// decodeInto unmarshals data into out (a non-nil pointer) and then enforces
// required fields. encoding/json silently zero-fills absent fields, so a
// struct field is treated as required unless it is a pointer, an interface,
// or tagged omitempty. Opaque targets (*any) accept an empty body as nil.
func decodeInto(data []byte, out any) error {
	target := reflect.TypeOf(out).Elem()
	trimmed := bytes.TrimSpace(data)

	if target.Kind() == reflect.Interface && len(trimmed) == 0 {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return err
	}
	if bytes.Equal(trimmed, jsonNull) && target.Kind() != reflect.Interface && target.Kind() != reflect.Pointer {
		return fmt.Errorf("response body is null")
	}
	return checkRequired(target, trimmed, "")
}

func checkRequired(t reflect.Type, raw []byte, at string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(raw, &obj); err != nil {
			return err
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, omitempty := fieldName(f)
			if name == "-" {
				continue
			}

			value, present := obj[name]
			if !present || bytes.Equal(bytes.TrimSpace(value), jsonNull) {
				if omitempty || f.Type.Kind() == reflect.Pointer || f.Type.Kind() == reflect.Interface {
					continue
				}
				return &MissingFieldError{Field: at + name}
			}
			if err := checkRequired(f.Type, value, at+name+"."); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		prefix := strings.TrimSuffix(at, ".")
		for i, item := range items {
			if err := checkRequired(t.Elem(), item, fmt.Sprintf("%s[%d].", prefix, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func fieldName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = f.Name
	}
	omitempty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" || opt == "omitzero" {
			omitempty = true
		}
	}
	return name, omitempty
}
