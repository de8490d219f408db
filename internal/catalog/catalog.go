// Package catalog provides the activities a registry is seeded with.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"example.com/extracurricular/internal/domain"
)

// File is the on-disk catalog layout.
type File struct {
	Activities []Entry `yaml:"activities"`
}

// Entry describes a single seeded activity.
type Entry struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// Default returns the built-in Mergington High School catalog.
func Default() []domain.Activity {
	return []domain.Activity{
		{
			Name:            "Tennis Club",
			Description:     "Learn tennis techniques and participate in friendly matches",
			Schedule:        "Wednesdays and Saturdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 16,
			Participants:    []string{"alex@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Competitive basketball training and games",
			Schedule:        "Mondays and Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"james@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Theater productions, acting, and stage performance",
			Schedule:        "Tuesdays and Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 25,
			Participants:    []string{"isabella@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Painting, drawing, and visual arts exploration",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"grace@mergington.edu", "noah@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Competitive debate and public speaking skills",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:00 PM",
			MaxParticipants: 14,
			Participants:    []string{"aiden@mergington.edu"},
		},
		{
			Name:            "Science Club",
			Description:     "Hands-on experiments and STEM exploration",
			Schedule:        "Thursdays, 3:30 PM - 4:45 PM",
			MaxParticipants: 20,
			Participants:    []string{"mia@mergington.edu", "ethan@mergington.edu"},
		},
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
	}
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) ([]domain.Activity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	activities, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return activities, nil
}

// Parse decodes a YAML catalog, trimming names and dropping duplicate participants.
func Parse(data []byte) ([]domain.Activity, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Activities) == 0 {
		return nil, errors.New("catalog defines no activities")
	}

	seen := make(map[string]struct{}, len(file.Activities))
	out := make([]domain.Activity, 0, len(file.Activities))
	for i, entry := range file.Activities {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("activity %d: name is required", i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate activity %q", name)
		}
		if entry.MaxParticipants < 0 {
			return nil, fmt.Errorf("activity %q: max_participants must be >= 0", name)
		}
		seen[name] = struct{}{}

		out = append(out, domain.Activity{
			Name:            name,
			Description:     entry.Description,
			Schedule:        entry.Schedule,
			MaxParticipants: entry.MaxParticipants,
			Participants:    dedupe(entry.Participants),
		})
	}
	return out, nil
}

func dedupe(emails []string) []string {
	out := make([]string, 0, len(emails))
	seen := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		if _, ok := seen[email]; ok {
			continue
		}
		seen[email] = struct{}{}
		out = append(out, email)
	}
	return out
}
