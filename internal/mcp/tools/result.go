package tools

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/pkg/logging"
)

// textResult returns a text-only ToolResult
func textResult(msg string) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: msg},
		},
	}
}

// jsonResult renders v as indented JSON text
func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return textResult(string(raw)), nil, nil
}

// errorResult reports err to the client as a tool error with a readable reason
func errorResult(log *logging.Logger, tool string, err error) (*sdkmcp.CallToolResult, any, error) {
	msg := domain.UserMessage(err)

	var derr *domain.Error
	if errors.As(err, &derr) && len(derr.Fields) > 0 {
		keys := make([]string, 0, len(derr.Fields))
		for k := range derr.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+derr.Fields[k])
		}
		msg += " (" + strings.Join(parts, "; ") + ")"
	}

	log.Debug("tool failed", "tool", tool, "err", err)

	res := textResult(msg)
	res.IsError = true
	return res, nil, nil
}
