package shortcut

import "strings"

// Target is the focusable element a key event was delivered to.
// It abstracts over DOM nodes and toolkit widgets alike.
type Target interface {
	// TagName is the element type, e.g. "INPUT" or "BODY". Empty if unknown.
	TagName() string
	// IsContentEditable reports whether the element accepts free text editing.
	IsContentEditable() bool
	// Role is the ARIA role of the element, if any.
	Role() string
}

// Element is a plain Target value.
type Element struct {
	Tag             string `json:"tagName"`
	ContentEditable bool   `json:"isContentEditable"`
	AriaRole        string `json:"role,omitempty"`
}

func (e Element) TagName() string        { return e.Tag }
func (e Element) IsContentEditable() bool { return e.ContentEditable }
func (e Element) Role() string            { return e.AriaRole }

// editableTags are element types that receive typed text
var editableTags = map[string]bool{
	"INPUT":    true,
	"TEXTAREA": true,
	"SELECT":   true,
}

// IsEditableTarget reports whether shortcuts must stay silent for target.
// A nil target, or one without a tag name, is never editable.
func IsEditableTarget(target Target) bool {
	if target == nil {
		return false
	}
	tag := strings.ToUpper(target.TagName())
	if tag == "" {
		return false
	}
	return target.IsContentEditable() ||
		editableTags[tag] ||
		target.Role() == "textbox"
}
