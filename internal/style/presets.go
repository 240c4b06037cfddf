package style

const defaultPresetID = "professional"

// Preset is a named style template selectable via settings.template.
type Preset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	ThemeColor   string  `json:"themeColor"`
	FontFamily   string  `json:"fontFamily"`
	FontSize     string  `json:"fontSize"`
	DocumentSize string  `json:"documentSize"`
	Spacing      Spacing `json:"spacing"`
	Margins      Margins `json:"margins"`
}

var presets = []Preset{
	{
		ID:           "professional",
		Name:         "Professional",
		Description:  "Clean, ATS-friendly design",
		ThemeColor:   "#1f2937",
		FontFamily:   "OpenSans",
		FontSize:     "11",
		DocumentSize: "Letter",
		Spacing:      Spacing{Section: 12, Item: 6, Line: 3, Header: 6},
		Margins:      Margins{Top: 0.5, Bottom: 0.5, Left: 0.5, Right: 0.5},
	},
	{
		ID:           "modern",
		Name:         "Modern",
		Description:  "Contemporary design with bold accents",
		ThemeColor:   "#2563eb",
		FontFamily:   "OpenSans",
		FontSize:     "11",
		DocumentSize: "Letter",
		Spacing:      Spacing{Section: 14, Item: 7, Line: 3, Header: 8},
		Margins:      Margins{Top: 0.6, Bottom: 0.6, Left: 0.6, Right: 0.6},
	},
	{
		ID:           "classic",
		Name:         "Classic",
		Description:  "Traditional professional format",
		ThemeColor:   "#374151",
		FontFamily:   "OpenSans",
		FontSize:     "11",
		DocumentSize: "Letter",
		Spacing:      Spacing{Section: 10, Item: 5, Line: 2, Header: 5},
		Margins:      Margins{Top: 0.75, Bottom: 0.75, Left: 0.75, Right: 0.75},
	},
}

// Presets lists the available templates in catalog order.
func Presets() []Preset {
	return append([]Preset(nil), presets...)
}

// presetByID resolves a template name. Unknown or empty names fall back to
// the default preset rather than failing.
func presetByID(id string) Preset {
	for _, p := range presets {
		if p.ID == id {
			return p
		}
	}
	return presets[0]
}
