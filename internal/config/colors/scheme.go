package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset" toml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent" toml:"accent"`

	// UI element colors
	Border     string `yaml:"border" toml:"border"`
	SelectedBg string `yaml:"selected_bg" toml:"selected_bg"`

	// Text colors
	Title  string `yaml:"title" toml:"title"`
	Subtle string `yaml:"subtle" toml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal" toml:"normal"`

	// Severity badges (foreground/background pairs)
	InfoFg    string `yaml:"info_fg" toml:"info_fg"`
	InfoBg    string `yaml:"info_bg" toml:"info_bg"`
	WarningFg string `yaml:"warning_fg" toml:"warning_fg"`
	WarningBg string `yaml:"warning_bg" toml:"warning_bg"`
	ErrorFg   string `yaml:"error_fg" toml:"error_fg"`
	ErrorBg   string `yaml:"error_bg" toml:"error_bg"`
	SuccessFg string `yaml:"success_fg" toml:"success_fg"`
	SuccessBg string `yaml:"success_bg" toml:"success_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Accent, preset.Accent)
	fill(&c.Border, preset.Border)
	fill(&c.SelectedBg, preset.SelectedBg)
	fill(&c.Title, preset.Title)
	fill(&c.Subtle, preset.Subtle)
	fill(&c.Normal, preset.Normal)
	fill(&c.InfoFg, preset.InfoFg)
	fill(&c.InfoBg, preset.InfoBg)
	fill(&c.WarningFg, preset.WarningFg)
	fill(&c.WarningBg, preset.WarningBg)
	fill(&c.ErrorFg, preset.ErrorFg)
	fill(&c.ErrorBg, preset.ErrorBg)
	fill(&c.SuccessFg, preset.SuccessFg)
	fill(&c.SuccessBg, preset.SuccessBg)
}

// MergeFrom overrides colors with every non-empty value of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&c.Preset, other.Preset)
	merge(&c.Accent, other.Accent)
	merge(&c.Border, other.Border)
	merge(&c.SelectedBg, other.SelectedBg)
	merge(&c.Title, other.Title)
	merge(&c.Subtle, other.Subtle)
	merge(&c.Normal, other.Normal)
	merge(&c.InfoFg, other.InfoFg)
	merge(&c.InfoBg, other.InfoBg)
	merge(&c.WarningFg, other.WarningFg)
	merge(&c.WarningBg, other.WarningBg)
	merge(&c.ErrorFg, other.ErrorFg)
	merge(&c.ErrorBg, other.ErrorBg)
	merge(&c.SuccessFg, other.SuccessFg)
	merge(&c.SuccessBg, other.SuccessBg)
}
