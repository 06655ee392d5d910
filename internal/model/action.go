package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Action string

const ActionSuspend Action = "suspend"

func (a Action) String() string { return string(a) }

// Result is the past-tense form reported back to the caller.
func (a Action) Result() string {
	switch a {
	case ActionSuspend:
		return "suspended"
	default:
		return ""
	}
}

// ParseAction matches s case-insensitively against the supported actions.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(s) {
	case "suspend":
		return ActionSuspend, true
	default:
		return "", false
	}
}

// ActionFromBody extracts the "action" member of a request body.
// A missing member or unreadable body yields "". Non-string values are
// returned as their raw JSON text so they can be reported back.
func ActionFromBody(data []byte) string {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ""
	}
	v, ok := raw["action"]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return string(bytes.TrimSpace(v))
	}
	return s
}
