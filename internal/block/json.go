// internal/block/json.go
package block

import (
	"encoding/json"
	"fmt"
)

// knownKeys mirrors the json tags on Block. Anything outside this set lands
// in the extra bag and is written back verbatim on marshal.
var knownKeys = []string{
	"id", "type",
	"backgroundColor", "textColor", "textAlign", "fontWeight", "fontSize",
	"borderRadius", "padding", "paddingTop", "paddingRight", "paddingBottom",
	"paddingLeft", "fontFamily", "borderColor",
	"content", "src", "alt", "level",
	"buttonText", "buttonUrl", "buttonColor", "buttonTextColor",
	"socialLinks", "companyName", "address", "unsubscribeText",
	"children", "columns",
}

// UnmarshalJSON decodes a block while keeping unrecognized fields so a
// load→save cycle through an older binary does not drop newer editor fields.
func (b *Block) UnmarshalJSON(data []byte) error {
	type plain Block
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}
	if len(raw) == 0 {
		raw = nil
	}
	p.extra = raw

	*b = Block(p)
	return nil
}

// MarshalJSON writes the typed fields plus any preserved extra fields. Known
// fields always win over a stale extra entry of the same name.
func (b Block) MarshalJSON() ([]byte, error) {
	type plain Block
	known, err := json.Marshal(plain(b))
	if err != nil {
		return nil, err
	}
	if len(b.extra) == 0 {
		return known, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range b.extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// ParseDocument decodes a persisted template content payload (a JSON array
// of blocks) into a document tree.
func ParseDocument(data []byte) ([]Block, error) {
	if len(data) == 0 {
		return []Block{}, nil
	}
	var blocks []Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("parse template content: %w", err)
	}
	return blocks, nil
}

// EncodeDocument serializes a document tree back to its persisted form.
func EncodeDocument(blocks []Block) ([]byte, error) {
	if blocks == nil {
		blocks = []Block{}
	}
	data, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("encode template content: %w", err)
	}
	return data, nil
}
