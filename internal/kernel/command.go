package kernel

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the closed set of command kinds the loop dispatches over. The
// raw wire type string is classified once, at decode time.
type Kind int

const (
	KindUnknown Kind = iota
	KindLoad
	KindExecute
	KindGetInfo
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindLoad:
		return "load"
	case KindExecute:
		return "execute"
	case KindGetInfo:
		return "get-info"
	default:
		return "unknown"
	}
}

// Command is one decoded request from the host.
type Command struct {
	Kind    Kind
	RawType string // the wire type string, kept for logging
	Path    string // load: file to read
	VarName string // load: target dataset name; get-info: dataset to report
	Code    string // execute: source text
	Engine  string // execute: engine name, empty for the default
}

// wireCommand is the JSON shape hosts send.
type wireCommand struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	VarName  string `json:"varName"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// classifyType matches the wire type by substring so hosts may send
// qualified names like "com.example.LoadCommand". Load wins over Execute
// wins over GetInfo when a type string somehow contains several.
func classifyType(raw string) Kind {
	switch {
	case strings.Contains(raw, "LoadCommand"):
		return KindLoad
	case strings.Contains(raw, "ExecuteCommand"):
		return KindExecute
	case strings.Contains(raw, "GetInfoCommand"):
		return KindGetInfo
	default:
		return KindUnknown
	}
}

// ParseCommand decodes one input line into a Command.
func ParseCommand(line []byte) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(line, &w); err != nil {
		return Command{}, fmt.Errorf("invalid JSON received: %v", err)
	}
	return Command{
		Kind:    classifyType(w.Type),
		RawType: w.Type,
		Path:    w.Path,
		VarName: w.VarName,
		Code:    w.Code,
		Engine:  w.Language,
	}, nil
}
