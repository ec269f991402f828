package domain

import (
	"errors"
	"fmt"
	"maps"
	"strings"
)

type ElementType string

const (
	ElementTypeText  ElementType = "text"
	ElementTypeTable ElementType = "table"
	ElementTypeChart ElementType = "chart"
)

// ElementTypes lists the element types the palette can drop into a column.
var ElementTypes = []ElementType{ElementTypeText, ElementTypeTable, ElementTypeChart}

var ErrUnknownElementType = errors.New("unknown element type")

// Valid reports whether t is one of the supported element types.
func (t ElementType) Valid() bool {
	switch t {
	case ElementTypeText, ElementTypeTable, ElementTypeChart:
		return true
	}
	return false
}

// ParseElementType converts a palette/drop payload into an ElementType.
func ParseElementType(s string) (ElementType, error) {
	t := ElementType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownElementType, s)
	}
	return t, nil
}

// Style maps CSS-like property names (camelCase) to values.
type Style map[string]string

// Clone returns an independent copy. A nil style clones to an empty one.
func (s Style) Clone() Style {
	c := make(Style, len(s))
	maps.Copy(c, s)
	return c
}

// Merge returns a copy of s with every key of other applied on top.
func (s Style) Merge(other Style) Style {
	c := s.Clone()
	maps.Copy(c, other)
	return c
}

// Style keys offered by the toolbar.
const (
	StyleTextAlign       = "textAlign"
	StyleFontSize        = "fontSize"
	StyleFontWeight      = "fontWeight"
	StyleFontStyle       = "fontStyle"
	StyleTextDecoration  = "textDecoration"
	StyleColor           = "color"
	StyleBackgroundColor = "backgroundColor"
	StyleBorderStyle     = "borderStyle"
	StyleBorderColor     = "borderColor"
	StyleBorderWidth     = "borderWidth"
)

// StyleOption describes one toolbar control so the frontend can build it.
type StyleOption struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Default string   `json:"default"`
	Choices []string `json:"choices,omitempty"` // empty for free-form inputs
}

// ToolbarStyles is the style palette shown in the designer toolbar.
var ToolbarStyles = []StyleOption{
	{Key: StyleTextAlign, Label: "Text Alignment", Default: "left", Choices: []string{"left", "center", "right", "justify"}},
	{Key: StyleFontSize, Label: "Font Size", Default: "16px"},
	{Key: StyleFontWeight, Label: "Font Weight", Default: "normal", Choices: []string{"normal", "bold"}},
	{Key: StyleFontStyle, Label: "Font Style", Default: "normal", Choices: []string{"normal", "italic"}},
	{Key: StyleTextDecoration, Label: "Text Decoration", Default: "none", Choices: []string{"none", "underline"}},
	{Key: StyleColor, Label: "Font Color", Default: "#000000"},
	{Key: StyleBackgroundColor, Label: "Background Color", Default: "#ffffff"},
	{Key: StyleBorderStyle, Label: "Border Style", Default: "none", Choices: []string{"none", "solid", "dashed", "dotted"}},
	{Key: StyleBorderColor, Label: "Border Color", Default: "#000000"},
	{Key: StyleBorderWidth, Label: "Border Width", Default: "0px"},
}
