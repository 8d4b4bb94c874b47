// internal/block/builders.go
package block

// Constructors below set only the fields meaningful for their type. They are
// the supported way to build documents in code (presets, seeders, tests); the
// renderer stays permissive about hand-assembled blocks regardless.

func NewHeading(id, content string, level int) Block {
	if level < 1 || level > 3 {
		level = 2
	}
	return Block{ID: id, Type: TypeHeading, Content: content, Level: level}
}

func NewText(id, content string) Block {
	return Block{ID: id, Type: TypeText, Content: content}
}

func NewImage(id, src, alt string) Block {
	return Block{ID: id, Type: TypeImage, Src: src, Alt: alt}
}

func NewLogo(id, src, alt string) Block {
	return Block{ID: id, Type: TypeLogo, Src: src, Alt: alt}
}

func NewButton(id, text, url string) Block {
	return Block{ID: id, Type: TypeButton, ButtonText: text, ButtonURL: url}
}

func NewDivider(id string) Block {
	return Block{ID: id, Type: TypeDivider}
}

// NewSpacer takes its height in px through the shared padding field.
func NewSpacer(id string, height int) Block {
	b := Block{ID: id, Type: TypeSpacer}
	if height > 0 {
		b.Padding = IntPtr(height)
	}
	return b
}

// NewProduct builds a product card: thumbnail, name, and a call-to-action
// link reusing the shared button fields.
func NewProduct(id, name, src, url string) Block {
	return Block{
		ID:         id,
		Type:       TypeProduct,
		Content:    name,
		Src:        src,
		Alt:        name,
		ButtonText: "View details",
		ButtonURL:  url,
	}
}

func NewSocial(id string, links ...SocialLink) Block {
	return Block{ID: id, Type: TypeSocial, SocialLinks: links}
}

func NewFooter(id, companyName, address, unsubscribeText string) Block {
	return Block{
		ID:              id,
		Type:            TypeFooter,
		CompanyName:     companyName,
		Address:         address,
		UnsubscribeText: unsubscribeText,
	}
}

// NewSection wraps child blocks one level deep. Container children are
// dropped here rather than at render time so a preset can never carry an
// illegally nested tree.
func NewSection(id string, children ...Block) Block {
	kept := make([]Block, 0, len(children))
	for _, c := range children {
		if c.IsContainer() {
			continue
		}
		kept = append(kept, c)
	}
	return Block{ID: id, Type: TypeSection, Children: kept}
}

// NewColumns lays lanes out side by side. Same containment rule as sections.
func NewColumns(id string, lanes ...[]Block) Block {
	cols := make([][]Block, 0, len(lanes))
	for _, lane := range lanes {
		kept := make([]Block, 0, len(lane))
		for _, c := range lane {
			if c.IsContainer() {
				continue
			}
			kept = append(kept, c)
		}
		cols = append(cols, kept)
	}
	return Block{ID: id, Type: TypeColumns, Columns: cols}
}
