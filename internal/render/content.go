package render

import (
	"encoding/json"
	"strings"

	"surveyor/internal/api"
)

// FlattenContent extracts renderable text from a legacy (non-structured)
// response. The data field historically held a string, an array of strings,
// or an arbitrary object; arrays join with blank lines and objects are
// pretty-printed. A response with neither answer nor data flattens to the
// empty string so the caller still renders an empty panel.
func FlattenContent(resp *api.GenerateResponse) string {
	if resp == nil {
		return ""
	}
	if resp.Answer != "" {
		return resp.Answer
	}
	if len(resp.Data) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(resp.Data, &asString); err == nil {
		return asString
	}

	var asList []string
	if err := json.Unmarshal(resp.Data, &asList); err == nil {
		return strings.Join(asList, "\n\n")
	}

	var pretty map[string]any
	if err := json.Unmarshal(resp.Data, &pretty); err == nil {
		if out, err := json.MarshalIndent(pretty, "", "  "); err == nil {
			return string(out)
		}
	}

	return string(resp.Data)
}
