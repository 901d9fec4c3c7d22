package progress

import "strings"

// Placement controls where a piece of text is drawn relative to the bar.
type Placement int

const (
	// DontShow hides the text.
	DontShow Placement = iota
	// InBar overlays the text on the middle of the bar.
	InBar
	// BeforePrefix draws the text left of the prefix.
	BeforePrefix
	// AfterPrefix draws the text between the prefix and the bar.
	AfterPrefix
	// BeforeSuffix draws the text between the bar and the suffix.
	BeforeSuffix
	// AfterSuffix draws the text right of the suffix.
	AfterSuffix
)

var placementNames = [...]string{
	DontShow:     "dont-show",
	InBar:        "in-bar",
	BeforePrefix: "before-prefix",
	AfterPrefix:  "after-prefix",
	BeforeSuffix: "before-suffix",
	AfterSuffix:  "after-suffix",
}

// String returns the flag spelling of p, such as "before-suffix".
func (p Placement) String() string {
	if p.valid() {
		return placementNames[p]
	}
	return "unknown"
}

func (p Placement) valid() bool {
	return p >= DontShow && p <= AfterSuffix
}

// ParsePlacement reads a placement name. Case, '-' and '_' are ignored,
// so "in-bar", "IN_BAR" and "inbar" are equivalent. "none" and "hide"
// are accepted for DontShow.
func ParsePlacement(s string) (Placement, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(s))
	switch key {
	case "none", "hide", "off":
		return DontShow, nil
	}
	for i, name := range placementNames {
		if key == strings.ReplaceAll(name, "-", "") {
			return Placement(i), nil
		}
	}
	return DontShow, newError(KindInvalidAppearance, "placement", s, "unknown placement")
}
