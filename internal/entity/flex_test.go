package entity

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestFlexStringsUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["Go","SQL"]`, []string{"Go", "SQL"}},
		{"array with junk", `["Go", null, 42, " SQL "]`, []string{"Go", "42", "SQL"}},
		{"joined string", `"Go, Node.js; SQL / Docker"`, []string{"Go", "Node.js", "SQL", "Docker"}},
		{"single token", `"Go"`, []string{"Go"}},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexStrings
			if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual([]string(f), tt.want) {
				t.Errorf("got %v, want %v", f, tt.want)
			}
		})
	}
}

func TestFlexStringsRejectsObject(t *testing.T) {
	var f FlexStrings
	if err := json.Unmarshal([]byte(`{"a":1}`), &f); err == nil {
		t.Fatal("expected error for object input")
	}
}

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"3.6/4"`, "3.6/4"},
		{`3.6`, "3.6"},
		{`3`, "3"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var f FlexString
		if err := json.Unmarshal([]byte(tt.in), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if f.String() != tt.want {
			t.Errorf("FlexString(%s): got %q, want %q", tt.in, f, tt.want)
		}
	}
}

func TestFlexListUnmarshal(t *testing.T) {
	type item struct {
		Name string `json:"name"`
	}

	var list FlexList[item]
	if err := json.Unmarshal([]byte(`[{"name":"a"},{"name":"b"}]`), &list); err != nil {
		t.Fatalf("array: %v", err)
	}
	if len(list) != 2 || list[1].Name != "b" {
		t.Errorf("array: got %v", list)
	}

	var one FlexList[item]
	if err := json.Unmarshal([]byte(`{"name":"solo"}`), &one); err != nil {
		t.Fatalf("object: %v", err)
	}
	if len(one) != 1 || one[0].Name != "solo" {
		t.Errorf("object: got %v", one)
	}

	var null FlexList[item]
	if err := json.Unmarshal([]byte(`null`), &null); err != nil {
		t.Fatalf("null: %v", err)
	}
	if null != nil {
		t.Errorf("null: got %v", null)
	}
}
