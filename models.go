package main

// availableModels is the fixed catalog offered by the model selection
// popup. Order matters: it is the display order and the clamp range
// for the selection index.
var availableModels = []string{
	"ernie-4.0-8k-latest",
	"ernie-4.0-8k-preview",
	"ernie-4.0-8k",
	"ernie-4.0-turbo-8k-latest",
	"ernie-4.0-turbo-8k-preview",
	"ernie-4.0-turbo-8k",
	"ernie-4.0-turbo-128k",
	"ernie-3.5-8k-preview",
	"ernie-3.5-8k",
	"ernie-3.5-128k",
	"ernie-speed-8k",
	"ernie-speed-128k",
	"ernie-speed-pro-128k",
	"ernie-lite-8k",
	"ernie-lite-pro-128k",
	"ernie-tiny-8k",
	"ernie-char-8k",
	"ernie-char-fiction-8k",
	"ernie-novel-8k",
	"deepseek-v3",
	"deepseek-r1",
}

const defaultModel = "deepseek-r1"

// modelIndex returns the catalog position of a model, falling back to
// the last entry for unknown names.
func modelIndex(model string) int {
	for i, m := range availableModels {
		if m == model {
			return i
		}
	}
	return len(availableModels) - 1
}
