// internal/block/block.go
package block

import "encoding/json"

// Type discriminates the kind of a block node. Consumers dispatch on it and
// must treat unknown values as renderable-to-nothing, never as an error.
type Type string

const (
	TypeHeading Type = "heading"
	TypeText    Type = "text"
	TypeImage   Type = "image"
	TypeButton  Type = "button"
	TypeDivider Type = "divider"
	TypeSpacer  Type = "spacer"
	TypeProduct Type = "product"
	TypeColumns Type = "columns"
	TypeLogo    Type = "logo"
	TypeSocial  Type = "social"
	TypeFooter  Type = "footer"
	TypeSection Type = "section"
)

// SocialLink is one entry of a social block. Platform resolves to a brand
// color and hosted icon through the renderer's lookup table; unknown
// platforms get a neutral fallback icon.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	IconURL  string `json:"iconUrl,omitempty"`
}

// Block is one node of an email document tree. It is a single struct with
// optional fields shared across all block types; which fields are meaningful
// depends on Type. Use the constructors in builders.go when assembling
// documents in code so only the fields for that type get set.
//
// Sections nest one level deep: Children may hold any type except section or
// columns. The same applies to each lane of Columns.
type Block struct {
	ID   string `json:"id,omitempty"`
	Type Type   `json:"type"`

	// Shared styling. Numeric fields are pointers so an explicit zero
	// survives a load/save cycle instead of collapsing into "absent".
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	TextAlign       string `json:"textAlign,omitempty"` // left|center|right
	FontWeight      string `json:"fontWeight,omitempty"` // normal|bold
	FontSize        *int   `json:"fontSize,omitempty"`   // px; width % for image/logo
	BorderRadius    *int   `json:"borderRadius,omitempty"`
	Padding         *int   `json:"padding,omitempty"`
	PaddingTop      *int   `json:"paddingTop,omitempty"`
	PaddingRight    *int   `json:"paddingRight,omitempty"`
	PaddingBottom   *int   `json:"paddingBottom,omitempty"`
	PaddingLeft     *int   `json:"paddingLeft,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty"`
	BorderColor     string `json:"borderColor,omitempty"`

	// Type-specific content.
	Content         string       `json:"content,omitempty"`
	Src             string       `json:"src,omitempty"`
	Alt             string       `json:"alt,omitempty"`
	Level           int          `json:"level,omitempty"` // heading 1..3
	ButtonText      string       `json:"buttonText,omitempty"`
	ButtonURL       string       `json:"buttonUrl,omitempty"`
	ButtonColor     string       `json:"buttonColor,omitempty"`
	ButtonTextColor string       `json:"buttonTextColor,omitempty"`
	SocialLinks     []SocialLink `json:"socialLinks,omitempty"`
	CompanyName     string       `json:"companyName,omitempty"`
	Address         string       `json:"address,omitempty"`
	UnsubscribeText string       `json:"unsubscribeText,omitempty"`

	// Containers. Children is section-only, Columns is columns-only.
	Children []Block   `json:"children,omitempty"`
	Columns  [][]Block `json:"columns,omitempty"`

	// Fields we do not model yet. Preserved through load/save so a newer
	// editor schema round-trips without data loss.
	extra map[string]json.RawMessage
}

// IsContainer reports whether the block is one of the two container types
// that must not appear inside another container.
func (b Block) IsContainer() bool {
	return b.Type == TypeSection || b.Type == TypeColumns
}

func IntPtr(v int) *int { return &v }
