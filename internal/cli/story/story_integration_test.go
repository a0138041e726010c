package story

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visualeyes/storylint/internal/app"
	"github.com/visualeyes/storylint/internal/cli"
	"github.com/visualeyes/storylint/internal/lint"
	"github.com/visualeyes/storylint/internal/models"
	"github.com/visualeyes/storylint/internal/services/catalog"
	"github.com/visualeyes/storylint/internal/testutil"
	clitest "github.com/visualeyes/storylint/internal/testutil/cli"
)

// importSample writes and imports the sample table with its narrative.
func importSample(t *testing.T, application *app.App, dir, name string) string {
	t.Helper()
	table := testutil.WriteFile(t, dir, name, testutil.SampleTable)
	narrative := testutil.WriteFile(t, dir, "narratives/"+name, testutil.SampleNarrative)

	doc, err := application.Linter.Load(lint.Input{TablePath: table, NarrativePaths: []string{narrative}})
	require.NoError(t, err)
	_, err = application.CatalogService.Import(context.Background(), catalog.ImportRequest{Document: doc, Checksum: "test"})
	require.NoError(t, err)
	return table
}

// ============================================================================
// LIST
// ============================================================================

func TestListStories(t *testing.T) {
	_, application := clitest.SetupCLITest(t)
	table := importSample(t, application, t.TempDir(), "stories.md")

	t.Run("human readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ListCmd(), []string{})
		require.NoError(t, err)
		assert.Contains(t, output, table)
		assert.Contains(t, output, "calibrate the tracker quickly")
	})

	t.Run("author filter ignores case", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ListCmd(), []string{"--author", "mk", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "3"}, strings.Split(strings.TrimSpace(output), "\n"))
	})

	t.Run("user prefix", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ListCmd(), []string{"--user", "Lab", "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "6"}, strings.Split(strings.TrimSpace(output), "\n"))
	})

	t.Run("json", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ListCmd(), []string{"--json"})
		require.NoError(t, err)

		var result struct {
			Success bool                  `json:"success"`
			Data    []*models.StoryDetail `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &result))
		assert.True(t, result.Success)
		require.Len(t, result.Data, 6)
		assert.Equal(t, "JS", result.Data[1].Story.Author)
	})

	t.Run("no match", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ListCmd(), []string{"--author", "ZZ"})
		require.NoError(t, err)
		assert.Contains(t, output, "No stories found")
	})
}

func TestListStories_EmptyJSON(t *testing.T) {
	_, application := clitest.SetupCLITest(t)

	output, err := clitest.ExecuteCLICommand(t, application, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	env := testutil.ParseEnvelope(t, output)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))
}

// ============================================================================
// SHOW
// ============================================================================

func TestShowStory(t *testing.T) {
	_, application := clitest.SetupCLITest(t)
	importSample(t, application, t.TempDir(), "stories.md")

	t.Run("human readable", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"3"})
		require.NoError(t, err)
		assert.Contains(t, output, "Story 3")
		assert.Contains(t, output, "mark stimulus onsets")
		assert.Contains(t, output, "Stimulus onset markers")
	})

	t.Run("json", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"3", "--json"})
		require.NoError(t, err)

		var result struct {
			Data models.StoryDetail `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &result))
		assert.Equal(t, 3, result.Data.Story.Number)
		require.Len(t, result.Data.Narratives, 1)
		assert.Equal(t, "MK", result.Data.Narratives[0].Author)
	})

	t.Run("story without narrative", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"4"})
		require.NoError(t, err)
		assert.Contains(t, output, "No narrative")
	})
}

func TestShowStory_Negative(t *testing.T) {
	_, application := clitest.SetupCLITest(t)

	t.Run("not a number", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"three", "--quiet"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitValidation, cli.ExitCode(err))
	})

	t.Run("nothing imported", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"1", "--quiet"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})

	dir := t.TempDir()
	first := importSample(t, application, dir, "a.md")
	importSample(t, application, dir, "b.md")

	t.Run("ambiguous document", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"1", "--json"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitUsage, cli.ExitCode(err))
		assert.Contains(t, output, "DOCUMENT_REQUIRED")
	})

	t.Run("explicit document", func(t *testing.T) {
		output, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"1", "--document", first, "--quiet"})
		require.NoError(t, err)
		assert.Equal(t, "1\n", output)
	})

	t.Run("unknown story", func(t *testing.T) {
		_, err := clitest.ExecuteCLICommand(t, application, ShowCmd(), []string{"99", "--document", first, "--quiet"})
		require.Error(t, err)
		assert.Equal(t, cli.ExitNotFound, cli.ExitCode(err))
	})
}
