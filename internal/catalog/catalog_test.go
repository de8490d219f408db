package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	activities := Default()
	require.Len(t, activities, 9)

	names := make(map[string]int, len(activities))
	for _, a := range activities {
		names[a.Name] = len(a.Participants)
	}
	assert.Equal(t, 1, names["Tennis Club"])
	assert.Equal(t, 2, names["Basketball Team"])
	assert.Contains(t, names, "Gym Class")
}

func TestParseDedupesParticipants(t *testing.T) {
	data := []byte(`
activities:
  - name: " Robotics "
    description: Build robots
    schedule: Fridays
    max_participants: 10
    participants:
      - ada@mergington.edu
      - ada@mergington.edu
      - "  "
      - linus@mergington.edu
`)
	activities, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	a := activities[0]
	assert.Equal(t, "Robotics", a.Name)
	assert.Equal(t, 10, a.MaxParticipants)
	assert.Equal(t, []string{"ada@mergington.edu", "linus@mergington.edu"}, a.Participants)
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":     "activities: []",
		"no name":   "activities:\n  - description: x\n",
		"duplicate": "activities:\n  - name: Chess\n  - name: Chess\n",
		"negative":  "activities:\n  - name: Chess\n    max_participants: -1\n",
		"malformed": "activities: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("activities:\n  - name: Choir\n    schedule: Mondays\n"), 0o600))

	activities, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "Choir", activities[0].Name)
	assert.Empty(t, activities[0].Participants)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExampleCatalogParses(t *testing.T) {
	activities, err := LoadFile(filepath.Join("..", "..", "configs", "catalog.example.yaml"))
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "Robotics Club", activities[0].Name)
	assert.Equal(t, []string{"ada@mergington.edu"}, activities[0].Participants)
	assert.Empty(t, activities[1].Participants)
}
