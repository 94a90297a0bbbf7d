// Package tsconst reads material records from, and writes lifecycle profiles
// into, the web application's TypeScript constants file.
package tsconst

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// Names of the constants the tool reads and patches.
const (
	DefaultAnchor          = "MATERIAL_LIFECYCLE_PROFILES"
	DefaultMaterialsAnchor = "MATERIAL_PALETTE"
)

// Parse errors.
var (
	ErrAnchorNotFound = errors.New("constant not found")
	ErrUnbalanced     = errors.New("unbalanced brackets")
	ErrInvalidProfile = errors.New("invalid profile entry")
)

// isKey reports whether tokens[i] is a property name: an identifier or string
// following '{' or ',' and followed by ':'.
func isKey(tokens []token, i int) bool {
	if i == 0 || i+1 >= len(tokens) {
		return false
	}
	if tokens[i].kind != tokIdent && tokens[i].kind != tokString {
		return false
	}
	prev := tokens[i-1]
	return (prev.is("{") || prev.is(",")) && tokens[i+1].is(":")
}

type objectFrame struct {
	strings map[string]string
	arrays  map[string][]string
}

// ParseMaterials extracts the material objects listed in the array assigned
// to anchor. Only direct elements with both an id and a name string property
// count; keywords are read from a string array property named keywords.
func ParseMaterials(src, anchor string) ([]model.Material, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	open, closeIdx, err := findLiteral(tokens, anchor, "[")
	if err != nil {
		return nil, err
	}

	var (
		stack     []*objectFrame
		materials []model.Material
	)

	for i := open + 1; i < closeIdx; i++ {
		tok := tokens[i]

		switch {
		case tok.is("{"):
			stack = append(stack, &objectFrame{
				strings: make(map[string]string),
				arrays:  make(map[string][]string),
			})
		case tok.is("}"):
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: stray '}' at offset %d", ErrUnbalanced, tok.start)
			}
			frame := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				continue
			}

			id, hasID := frame.strings["id"]
			name, hasName := frame.strings["name"]
			if hasID && hasName {
				materials = append(materials, model.Material{
					ID:          id,
					Name:        name,
					Description: frame.strings["description"],
					Keywords:    frame.arrays["keywords"],
				})
			}
		case len(stack) > 0 && isKey(tokens, i) && i+2 < closeIdx:
			frame := stack[len(stack)-1]
			value := tokens[i+2]
			switch {
			case value.kind == tokString:
				frame.strings[tok.val] = value.val
			case value.is("["):
				end := matching(tokens, i+2)
				if end < 0 || end > closeIdx {
					return nil, fmt.Errorf("%w: array %q at offset %d", ErrUnbalanced, tok.val, value.start)
				}
				var items []string
				for _, t := range tokens[i+3 : end] {
					if t.kind == tokString {
						items = append(items, t.val)
					}
				}
				frame.arrays[tok.val] = items
			}
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed objects in %s", ErrUnbalanced, len(stack), anchor)
	}

	return materials, nil
}

// findObject locates the object literal assigned to anchor.
func findObject(tokens []token, anchor string) (int, int, error) {
	return findLiteral(tokens, anchor, "{")
}

// findLiteral locates the literal opened by bracket and assigned to anchor,
// either as `anchor = {` (with an optional type annotation) or as a property
// `anchor: {`. It returns the token indexes of the opening and closing
// brackets.
func findLiteral(tokens []token, anchor, bracket string) (int, int, error) {
	for i, tok := range tokens {
		if tok.kind != tokIdent || tok.val != anchor {
			continue
		}

		open := -1
		if i+2 < len(tokens) && tokens[i+1].is(":") && tokens[i+2].is(bracket) {
			open = i + 2
		} else {
			for j := i + 1; j < len(tokens); j++ {
				if tokens[j].is(";") {
					break
				}
				if tokens[j].is("=") && j+1 < len(tokens) && tokens[j+1].is(bracket) {
					open = j + 1
					break
				}
			}
		}
		if open < 0 {
			continue
		}

		closeIdx := matching(tokens, open)
		if closeIdx < 0 {
			return 0, 0, fmt.Errorf("%w: %s", ErrUnbalanced, anchor)
		}
		return open, closeIdx, nil
	}

	return 0, 0, fmt.Errorf("%w: %s", ErrAnchorNotFound, anchor)
}

// ProfileIDs returns the material IDs that already have an entry in the
// profiles object named by anchor.
func ProfileIDs(src, anchor string) (map[string]bool, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	open, closeIdx, err := findObject(tokens, anchor)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool)
	for i := open + 1; i < closeIdx; i++ {
		if !isKey(tokens, i) || !tokens[i+2].is("{") {
			continue
		}
		ids[tokens[i].val] = true
		// Skip the entry body so phase keys are not mistaken for IDs.
		if end := matching(tokens, i+2); end > 0 {
			i = end
		}
	}

	return ids, nil
}

// ParseProfiles reads every entry of the profiles object into records keyed
// by material ID. Phases are returned in the fixed lifecycle order; unknown
// phase keys are an error.
func ParseProfiles(src, anchor string) (map[string]model.ProfileRecord, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	open, closeIdx, err := findObject(tokens, anchor)
	if err != nil {
		return nil, err
	}

	records := make(map[string]model.ProfileRecord)
	for i := open + 1; i < closeIdx; i++ {
		if !isKey(tokens, i) || !tokens[i+2].is("{") {
			continue
		}
		id := tokens[i].val
		end := matching(tokens, i+2)
		if end < 0 {
			return nil, fmt.Errorf("%w: profile %q", ErrUnbalanced, id)
		}

		p, err := parseProfileBody(tokens[i+2 : end+1])
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", id, err)
		}

		record := model.ProfileRecord{MaterialID: id}
		for _, phase := range model.Phases() {
			if rating, ok := p[phase]; ok {
				record.Phases = append(record.Phases, model.PhaseRating{Phase: phase, Rating: rating})
			}
		}
		records[id] = record
		i = end
	}

	return records, nil
}

// parseProfileBody reads `{ raw: { impact: 1, confidence: 'high' }, ... }`.
func parseProfileBody(tokens []token) (model.Profile, error) {
	p := make(model.Profile)

	for i := 1; i < len(tokens)-1; i++ {
		if !isKey(tokens, i) || !tokens[i+2].is("{") {
			continue
		}
		phase, err := model.PhaseFromFieldName(tokens[i].val)
		if err != nil {
			return nil, err
		}
		end := matching(tokens, i+2)
		if end < 0 {
			return nil, fmt.Errorf("%w: phase %s", ErrUnbalanced, phase)
		}

		var rating model.Rating
		for j := i + 3; j < end; j++ {
			if !isKey(tokens, j) {
				continue
			}
			value := tokens[j+2]
			switch tokens[j].val {
			case "impact":
				impact, err := strconv.Atoi(value.val)
				if err != nil {
					return nil, fmt.Errorf("%w: phase %s: impact %q is not an integer", ErrInvalidProfile, phase, value.val)
				}
				rating.Impact = impact
			case "confidence":
				rating.Confidence = model.Confidence(value.val)
			}
		}
		if err := rating.Validate(); err != nil {
			return nil, fmt.Errorf("%w: phase %s: %w", ErrInvalidProfile, phase, err)
		}
		p[phase] = rating
		i = end
	}

	return p, nil
}
