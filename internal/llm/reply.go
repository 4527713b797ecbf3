package llm

import (
	"encoding/json"
	"strings"
)

// reply is what an adapter pulls out of its vendor's response before the
// shared checks run.
type reply struct {
	text  string
	model string
	stop  StopReason
	usage Usage
}

// finish turns a vendor reply into a Response. Structured replies are
// unfenced and validated; a structured reply cut off at MaxTokens is an
// error because the JSON cannot be complete.
func finish(req Request, r reply) (*Response, error) {
	resp := &Response{Model: r.model, StopReason: r.stop, Usage: r.usage}
	if req.Schema == nil {
		if strings.TrimSpace(r.text) == "" {
			return nil, &ErrInvalidResponse{Err: errNoContent}
		}
		resp.Text = r.text
		return resp, nil
	}

	content := json.RawMessage(unfence(r.text))
	if r.stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	resp.Content = content
	return resp, nil
}

// unfence strips a ```json fence some models put around JSON even when
// asked for bare output.
func unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// resolveModel maps a friendly alias to a vendor model ID. Unknown names
// pass through so full IDs work too.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
