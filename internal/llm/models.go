package llm

// DefaultModel is used when nothing else is configured.
const DefaultModel = "claude-sonnet-4-20250514"

// SupportedModels lists the model identifiers the cellar accepts.
var SupportedModels = []string{
	"claude-opus-4-20250514",
	"claude-sonnet-4-20250514",
	"claude-3-7-sonnet-20250219",
	"claude-3-5-haiku-20241022",
}

func IsSupportedModel(id string) bool {
	for _, m := range SupportedModels {
		if m == id {
			return true
		}
	}
	return false
}
