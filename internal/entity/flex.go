package entity

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Language-completion services are loose with types: a field documented as a
// list may come back as a single object or a delimiter-joined string. These
// wrappers absorb that at decode time so nothing downstream ever branches on
// "is this a list or a dict".

var flexSeparators = regexp.MustCompile(`[,;/·]`)

// FlexStrings decodes from either a JSON array or a single delimiter-bearing
// string ("Go, Node.js; SQL").
type FlexStrings []string

func (f *FlexStrings) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var raw []any
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make([]string, 0, len(raw))
		for _, v := range raw {
			if s := coerceString(v); s != "" {
				out = append(out, s)
			}
		}
		*f = out
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("flex strings: neither array nor string: %w", err)
	}
	var out []string
	for _, part := range flexSeparators.Split(s, -1) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	*f = out
	return nil
}

// FlexString decodes a scalar that may arrive as a string, a number, or
// null ("gpa": 3.6 vs "gpa": "3.6/4").
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = FlexString(coerceString(v))
	return nil
}

func (f FlexString) String() string { return string(f) }

// FlexList decodes from either a JSON array of T or a single T object.
type FlexList[T any] []T

func (f *FlexList[T]) UnmarshalJSON(data []byte) error {
	data = []byte(strings.TrimSpace(string(data)))
	if len(data) == 0 || string(data) == "null" {
		*f = nil
		return nil
	}
	if data[0] == '[' {
		var list []T
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*f = list
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("flex list: neither array nor object: %w", err)
	}
	*f = []T{one}
	return nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSpace(strings.TrimSuffix(fmt.Sprintf("%v", t), ".0"))
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}
