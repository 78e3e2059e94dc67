package models

// DefaultEndpoint is the base URL for the Gemini generateContent API.
const DefaultEndpoint = "https://generativelanguage.googleapis.com"

// Model represents an available Gemini model.
type Model struct {
	Name  string
	Alias string // short name accepted on the command line
}

// Available models
var (
	// ModelUnspecified falls back to the client's configured default.
	ModelUnspecified = Model{}

	Model25Flash = Model{
		Name:  "gemini-2.5-flash",
		Alias: "flash",
	}

	Model25FlashLite = Model{
		Name:  "gemini-2.5-flash-lite",
		Alias: "flash-lite",
	}

	Model25Pro = Model{
		Name:  "gemini-2.5-pro",
		Alias: "pro",
	}

	// DefaultModel is the recommended default
	DefaultModel = Model25Flash
)

// AllModels returns a list of all available models
func AllModels() []Model {
	return []Model{Model25Flash, Model25FlashLite, Model25Pro}
}

// ModelFromName returns a Model by its full name or alias. Unknown names are
// passed through as-is so newly published models work without a release.
func ModelFromName(name string) Model {
	for _, m := range AllModels() {
		if m.Name == name || m.Alias == name {
			return m
		}
	}
	if name == "" {
		return DefaultModel
	}
	return Model{Name: name}
}
