package llm

import (
	"encoding/json"
	"strings"

	"github.com/recruitflow/resume-parser/internal/common"
)

// Salvage recovers a JSON document from raw model output. Models wrap JSON
// in markdown fences or prepend commentary; cutting at the first brace or
// bracket handles the prefix, and one retry trimmed to the last closing
// brace handles trailing noise.
func Salvage(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)

	start := -1
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, common.NewAppError("MALFORMED_LLM_OUTPUT", "no JSON found in model output", common.ErrMalformedLLMOutput)
	}
	s = s[start:]

	if json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	if end := strings.LastIndexByte(s, '}'); end >= 0 {
		trimmed := s[:end+1]
		if json.Valid([]byte(trimmed)) {
			return []byte(trimmed), nil
		}
	}
	return nil, common.NewAppError("MALFORMED_LLM_OUTPUT", "model output is not valid JSON", common.ErrMalformedLLMOutput)
}
