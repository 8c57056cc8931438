package theme

import (
	"context"
	"encoding/json"

	"github.com/andy/invoicepro/internal/logging"
	"github.com/andy/invoicepro/internal/store"
)

// Theme holds the user's display preferences, persisted alongside the
// invoice document
type Theme struct {
	Dark   bool   `json:"dark"`
	Accent string `json:"accent"`
}

// DefaultTheme is the palette used before the user customizes anything
func DefaultTheme() Theme {
	return Theme{
		Dark:   true,
		Accent: "205",
	}
}

// Palette is the set of concrete colors a theme resolves to
type Palette struct {
	Accent    string
	Text      string
	Muted     string
	Success   string
	Warning   string
	Error     string
	Highlight string
}

// Palette resolves the theme into terminal colors
func (t Theme) Palette() Palette {
	p := Palette{
		Accent:    t.Accent,
		Success:   "42",
		Warning:   "214",
		Error:     "196",
		Highlight: "170",
	}
	if t.Dark {
		p.Text = "252"
		p.Muted = "241"
	} else {
		p.Text = "235"
		p.Muted = "245"
	}
	if p.Accent == "" {
		p.Accent = "205"
	}
	return p
}

// Manager loads and saves the theme blob
type Manager struct {
	store store.BlobStore
}

func NewManager(blobStore store.BlobStore) *Manager {
	return &Manager{store: blobStore}
}

// Load returns the stored theme, or the default when nothing is stored or
// the blob is unreadable
func (m *Manager) Load(ctx context.Context) Theme {
	data, err := m.store.Get(ctx, store.StylesKey)
	if err != nil || data == nil {
		return DefaultTheme()
	}

	var t Theme
	if err := json.Unmarshal(data, &t); err != nil {
		logging.GetLogger().WithError(err).Warn("stored theme is corrupt, using default")
		return DefaultTheme()
	}
	return t
}

func (m *Manager) Save(ctx context.Context, t Theme) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return m.store.Put(ctx, store.StylesKey, data)
}
