package models

// Story is one row of a user-story requirements table.
type Story struct {
	Number         int    `json:"number"`
	NumberText     string `json:"number_text,omitempty"` // raw Story No. cell, e.g. "03"
	Author         string `json:"author"`                // author initials
	User           string `json:"user"`                  // persona or role
	Goal           string `json:"goal"`
	DesiredFeature string `json:"desired_feature"`
	SkillLevel     string `json:"skill_level"`
	Line           int    `json:"line,omitempty"` // 1-based line in the source table
}

// GetID returns the story number so quiet CLI output can print it.
func (s *Story) GetID() int {
	return s.Number
}

// Row is a table row exactly as scanned, before it is mapped onto a Story.
// Cells keeps every cell, including surplus ones, so malformed rows can be reported.
type Row struct {
	Line  int
	Cells []string
}

// Table is a parsed story table.
type Table struct {
	Path       string
	Header     []string
	HeaderLine int
	Rows       []Row
	Stories    []*Story

	// Notes holds disagreements between the row scanner and the markdown parser.
	Notes []ParseNote
}

// ParseNote records a structural oddity found while reading a table.
type ParseNote struct {
	Line    int
	Message string
}

// StoryByNumber returns the first story with the given number.
func (t *Table) StoryByNumber(number int) *Story {
	if t == nil {
		return nil
	}
	for _, s := range t.Stories {
		if s.Number == number {
			return s
		}
	}
	return nil
}

// Authors returns the distinct author initials in table order.
func (t *Table) Authors() []string {
	if t == nil {
		return nil
	}
	seen := make(map[string]bool)
	var authors []string
	for _, s := range t.Stories {
		if s.Author == "" || seen[s.Author] {
			continue
		}
		seen[s.Author] = true
		authors = append(authors, s.Author)
	}
	return authors
}

// Narrative is a free-text elaboration of a single story.
type Narrative struct {
	Path        string `json:"path"`
	StoryNumber int    `json:"story,omitempty"` // 0 when the story could not be determined
	Author      string `json:"author,omitempty"`
	Title       string `json:"title,omitempty"`
	TitleLine   int    `json:"-"`
	Body        string `json:"body"`
}

// Document is the unit a lint run inspects: one table and its narratives.
type Document struct {
	Table      *Table
	Narratives []*Narrative
}

// StoryDetail is a catalogued story together with the narratives elaborating it.
type StoryDetail struct {
	Story        *Story       `json:"story"`
	DocumentPath string       `json:"document"`
	Narratives   []*Narrative `json:"narratives"`
}
