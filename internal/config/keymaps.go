package config

// KeyMappings defines the key bindings of the story browser
type KeyMappings struct {
	// Navigation
	NextStory  string `yaml:"next_story" toml:"next_story"`
	PrevStory  string `yaml:"prev_story" toml:"prev_story"`
	FirstStory string `yaml:"first_story" toml:"first_story"`
	LastStory  string `yaml:"last_story" toml:"last_story"`
	ScrollDown string `yaml:"scroll_down" toml:"scroll_down"`
	ScrollUp   string `yaml:"scroll_up" toml:"scroll_up"`

	// Panes and filters
	ToggleFindings string `yaml:"toggle_findings" toml:"toggle_findings"`
	CycleAuthor    string `yaml:"cycle_author" toml:"cycle_author"`
	ClearFilter    string `yaml:"clear_filter" toml:"clear_filter"`

	// Other
	ShowHelp string `yaml:"show_help" toml:"show_help"`
	Quit     string `yaml:"quit" toml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		NextStory:      "j",
		PrevStory:      "k",
		FirstStory:     "g",
		LastStory:      "G",
		ScrollDown:     "ctrl+d",
		ScrollUp:       "ctrl+u",
		ToggleFindings: "tab",
		CycleAuthor:    "a",
		ClearFilter:    "esc",
		ShowHelp:       "?",
		Quit:           "q",
	}
}

// applyDefaults fills in any missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&k.NextStory, defaults.NextStory)
	fill(&k.PrevStory, defaults.PrevStory)
	fill(&k.FirstStory, defaults.FirstStory)
	fill(&k.LastStory, defaults.LastStory)
	fill(&k.ScrollDown, defaults.ScrollDown)
	fill(&k.ScrollUp, defaults.ScrollUp)
	fill(&k.ToggleFindings, defaults.ToggleFindings)
	fill(&k.CycleAuthor, defaults.CycleAuthor)
	fill(&k.ClearFilter, defaults.ClearFilter)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
