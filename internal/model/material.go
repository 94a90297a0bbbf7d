// Package model defines the core domain models used throughout the application.
package model

import (
	"strings"
	"time"
)

// Material is a catalogue entry read from the application's constants file.
// It is treated as read-only input.
type Material struct {
	UpdatedAt   time.Time `json:"-" yaml:"-"`
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Keywords    []string  `json:"keywords" yaml:"keywords"`
}

// SearchText returns the lowercase blob the classifier matches against.
func (m Material) SearchText() string {
	return SearchText(m.Name, m.Description, m.Keywords)
}

// SearchText joins name, description and keywords into a single lowercase string.
func SearchText(name, description string, keywords []string) string {
	parts := make([]string, 0, len(keywords)+2)
	parts = append(parts, name, description)
	parts = append(parts, keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}
