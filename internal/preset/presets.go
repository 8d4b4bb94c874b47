// internal/preset/presets.go
package preset

import (
	"github.com/google/uuid"

	"github.com/quartzline/b2bmailer-backend/internal/block"
)

// Preset is a ready-made template document used to bootstrap new templates
// in the editor and to seed a fresh database.
type Preset struct {
	Key     string        `json:"key"`
	Name    string        `json:"name"`
	Subject string        `json:"subject"`
	Blocks  []block.Block `json:"blocks"`
}

// All returns the built-in presets. Block IDs are generated per call; they
// only need to be unique within a document, not stable across calls.
func All() []Preset {
	return []Preset{
		welcome(),
		productPromo(),
		newsletter(),
	}
}

// ByKey looks a preset up by its key, nil when unknown.
func ByKey(key string) *Preset {
	for _, p := range All() {
		if p.Key == key {
			return &p
		}
	}
	return nil
}

func id() string { return uuid.NewString() }

func welcome() Preset {
	return Preset{
		Key:     "welcome",
		Name:    "Welcome Email",
		Subject: "Welcome to our catalog",
		Blocks: []block.Block{
			block.NewLogo(id(), "https://placehold.co/240x60?text=Logo", "Company logo"),
			block.NewHeading(id(), "Welcome, {{name}}!", 1),
			block.NewText(id(), "Thanks for joining our mailing list. You will be the first to hear about new products, price updates and seasonal offers."),
			block.NewButton(id(), "Browse the catalog", "https://example.com/catalog"),
			block.NewDivider(id()),
			block.NewFooter(id(), "Quartzline Trading", "12 Harbor Road, Industrial Park", "Unsubscribe"),
		},
	}
}

func productPromo() Preset {
	leftLane := []block.Block{
		block.NewProduct(id(), "Steel Bracket M8", "https://placehold.co/200x200?text=Bracket", "https://example.com/products/steel-bracket-m8"),
	}
	rightLane := []block.Block{
		block.NewProduct(id(), "Anchor Bolt Set", "https://placehold.co/200x200?text=Bolts", "https://example.com/products/anchor-bolt-set"),
	}
	return Preset{
		Key:     "product-promo",
		Name:    "Product Promotion",
		Subject: "Featured products this month",
		Blocks: []block.Block{
			block.NewLogo(id(), "https://placehold.co/240x60?text=Logo", "Company logo"),
			block.NewHeading(id(), "Featured products", 2),
			block.NewText(id(), "Hand-picked items from our catalog, available for immediate quote."),
			block.NewColumns(id(), leftLane, rightLane),
			block.NewButton(id(), "Request a quote", "https://example.com/inquiry"),
			block.NewFooter(id(), "Quartzline Trading", "12 Harbor Road, Industrial Park", "Unsubscribe"),
		},
	}
}

func newsletter() Preset {
	intro := block.NewSection(id(),
		block.NewHeading(id(), "Monthly update", 2),
		block.NewText(id(), "Hello {{name}}, here is what changed in our catalog this month."),
	)
	intro.BackgroundColor = "#f0f9fb"
	intro.Padding = block.IntPtr(24)

	social := block.NewSocial(id(),
		block.SocialLink{Platform: "facebook", URL: "https://facebook.com/example"},
		block.SocialLink{Platform: "linkedin", URL: "https://linkedin.com/company/example"},
		block.SocialLink{Platform: "instagram", URL: "https://instagram.com/example"},
	)

	return Preset{
		Key:     "newsletter",
		Name:    "Newsletter",
		Subject: "Catalog news",
		Blocks: []block.Block{
			block.NewLogo(id(), "https://placehold.co/240x60?text=Logo", "Company logo"),
			intro,
			block.NewSpacer(id(), 16),
			block.NewText(id(), "We added new fastener lines and updated bulk pricing across the range. Reply to this email or open an inquiry for volume quotes."),
			block.NewDivider(id()),
			social,
			block.NewFooter(id(), "Quartzline Trading", "12 Harbor Road, Industrial Park", "Unsubscribe"),
		},
	}
}
