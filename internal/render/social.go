// internal/render/social.go
package render

// socialStyle pairs a platform's brand color with a hosted icon. The map is
// the single source of truth for social rendering; an unlisted platform gets
// the neutral fallback, never an empty icon.
type socialStyle struct {
	Color   string
	IconURL string
}

var socialStyles = map[string]socialStyle{
	"facebook":  {Color: "#1877f2", IconURL: "https://cdn-icons-png.flaticon.com/64/733/733547.png"},
	"instagram": {Color: "#e4405f", IconURL: "https://cdn-icons-png.flaticon.com/64/2111/2111463.png"},
	"linkedin":  {Color: "#0a66c2", IconURL: "https://cdn-icons-png.flaticon.com/64/174/174857.png"},
	"twitter":   {Color: "#1da1f2", IconURL: "https://cdn-icons-png.flaticon.com/64/733/733579.png"},
	"youtube":   {Color: "#ff0000", IconURL: "https://cdn-icons-png.flaticon.com/64/1384/1384060.png"},
	"tiktok":    {Color: "#010101", IconURL: "https://cdn-icons-png.flaticon.com/64/3046/3046121.png"},
}

var socialFallback = socialStyle{
	Color:   "#6b7280",
	IconURL: "https://cdn-icons-png.flaticon.com/64/455/455691.png",
}

func styleForPlatform(platform string) socialStyle {
	if s, ok := socialStyles[platform]; ok {
		return s
	}
	return socialFallback
}
