package tsconst

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// ErrDuplicateProfile is returned when injecting a profile that already exists.
var ErrDuplicateProfile = errors.New("profile already present")

// GeneratedMarker heads the generated section of the profiles object.
const GeneratedMarker = "// === AUTO-GENERATED PROFILES ==="

// RenderRecord renders one entry of the profiles object, terminated by a
// comma and newline. indent is the indentation of the entry key.
func RenderRecord(record model.ProfileRecord, indent string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s%s: {\n", indent, quote(record.MaterialID))
	for _, pr := range record.Phases {
		fmt.Fprintf(&b, "%s  %s: { impact: %d, confidence: %s },\n",
			indent, pr.Phase.FieldName(), pr.Impact, quote(string(pr.Confidence)))
	}
	fmt.Fprintf(&b, "%s},\n", indent)

	return b.String()
}

// lineIndent returns the leading whitespace of the line containing offset and
// whether only whitespace precedes offset on that line.
func lineIndent(src string, offset int) (string, int, bool) {
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	line := src[lineStart:]
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	onlyWS := strings.TrimSpace(src[lineStart:offset]) == ""
	return indent, lineStart, onlyWS
}

// InjectProfiles inserts records before the closing brace of the profiles
// object named by anchor. It adds a trailing comma to the last existing entry
// when missing, and refuses records whose ID is already present. The first
// injection into an object writes GeneratedMarker ahead of the new entries;
// later ones append below the generated entries already there.
func InjectProfiles(src, anchor string, records []model.ProfileRecord) (string, error) {
	if len(records) == 0 {
		return src, nil
	}

	existing, err := ProfileIDs(src, anchor)
	if err != nil {
		return "", err
	}
	for _, record := range records {
		if existing[record.MaterialID] {
			return "", fmt.Errorf("%w: %s", ErrDuplicateProfile, record.MaterialID)
		}
	}

	tokens, err := lex(src)
	if err != nil {
		return "", err
	}
	open, closeIdx, err := findObject(tokens, anchor)
	if err != nil {
		return "", err
	}

	closePos := tokens[closeIdx].start
	closeIndent, lineStart, closeOnOwnLine := lineIndent(src, closePos)
	entryIndent := closeIndent + "  "

	hasEntries := closeIdx-1 > open
	var rendered strings.Builder
	if !strings.Contains(src[tokens[open].start:closePos], GeneratedMarker) {
		if hasEntries {
			rendered.WriteString("\n")
		}
		rendered.WriteString(entryIndent + GeneratedMarker + "\n\n")
	}
	for _, record := range records {
		rendered.WriteString(RenderRecord(record, entryIndent))
	}

	insertAt := closePos
	insertText := "\n" + rendered.String() + closeIndent
	if closeOnOwnLine {
		insertAt = lineStart
		insertText = rendered.String()
	}

	var b strings.Builder
	b.Grow(len(src) + len(insertText) + 1)

	last := tokens[closeIdx-1]
	if hasEntries && !last.is(",") {
		b.WriteString(src[:last.end])
		b.WriteString(",")
		b.WriteString(src[last.end:insertAt])
	} else {
		b.WriteString(src[:insertAt])
	}
	b.WriteString(insertText)
	b.WriteString(src[insertAt:])

	return b.String(), nil
}
