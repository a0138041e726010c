package models

// ============================================================================
// TABLE COLUMNS
// ============================================================================

// Canonical column names of a story table, in their expected order.
const (
	ColumnStoryNo        = "Story No."
	ColumnAuthor         = "Author"
	ColumnUser           = "User"
	ColumnGoal           = "Goal"
	ColumnDesiredFeature = "Desired Feature"
	ColumnSkillLevel     = "Skill Level"
)

// DefaultColumns returns the expected header of a story table.
func DefaultColumns() []string {
	return []string{
		ColumnStoryNo,
		ColumnAuthor,
		ColumnUser,
		ColumnGoal,
		ColumnDesiredFeature,
		ColumnSkillLevel,
	}
}

// DefaultStoryNoAliases are header spellings accepted for the Story No. column.
func DefaultStoryNoAliases() []string {
	return []string{"Story No", "Story Nr", "Story #", "No", "Nr", "#", "Story"}
}

// ============================================================================
// LINT DEFAULTS
// ============================================================================

// DefaultFirstStoryNumber is where story numbering is expected to start.
const DefaultFirstStoryNumber = 1

// DefaultAuthorPattern matches author initials such as "JD" or "MKL".
const DefaultAuthorPattern = `^[A-Z]{2,4}$`
