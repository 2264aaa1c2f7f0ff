package deck

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/five82/marquee/internal/slider"
)

// ErrNoWidgets is returned for decks that define nothing to show.
var ErrNoWidgets = errors.New("deck defines no widgets")

// Format is the encoding of a deck file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

const (
	defaultOverlayColor   = "#000000"
	defaultOverlayOpacity = 0.5
	defaultImageFit       = "cover"
)

var (
	hexColor  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	imageFits = map[string]bool{
		"cover":      true,
		"contain":    true,
		"fill":       true,
		"none":       true,
		"scale-down": true,
	}
)

// Slide is one card in a widget.
type Slide struct {
	Title  string   `toml:"title" yaml:"title"`
	Body   string   `toml:"body" yaml:"body"` // markdown
	URL    string   `toml:"url" yaml:"url"`
	Author string   `toml:"author" yaml:"author"`
	Date   string   `toml:"date" yaml:"date"`
	Tags   []string `toml:"tags" yaml:"tags"`
}

// Widget is the declarative description of one slider instance.
type Widget struct {
	ID             string   `toml:"id" yaml:"id"`
	Title          string   `toml:"title" yaml:"title"`
	Speed          string   `toml:"speed" yaml:"speed"`
	Transition     string   `toml:"transition" yaml:"transition"`
	OverlayColor   string   `toml:"overlay_color" yaml:"overlay_color"`
	OverlayOpacity *float64 `toml:"overlay_opacity" yaml:"overlay_opacity"`
	ImageFit       string   `toml:"image_fit" yaml:"image_fit"`
	Width          int      `toml:"width" yaml:"width"`
	Height         int      `toml:"height" yaml:"height"`
	Indicators     *bool    `toml:"indicators" yaml:"indicators"`
	Controls       *bool    `toml:"controls" yaml:"controls"`
	Slides         []Slide  `toml:"slides" yaml:"slides"`
}

// Deck is an ordered list of independent widgets.
type Deck struct {
	Title   string   `toml:"title" yaml:"title"`
	Widgets []Widget `toml:"widgets" yaml:"widgets"`
}

// Settings are a widget's presentation options with defaults applied.
type Settings struct {
	Autoplay       slider.AutoplayConfig
	Transition     slider.Transition
	OverlayColor   string
	OverlayOpacity float64
	ImageFit       string
	Width          int
	Height         int
	ShowIndicators bool
	ShowControls   bool
}

// Settings resolves the widget's options. Invalid values fall back to their
// defaults instead of failing.
func (w Widget) Settings() Settings {
	s := Settings{
		Autoplay:       slider.ParseSpeed(w.Speed),
		Transition:     slider.ParseTransition(w.Transition),
		OverlayColor:   defaultOverlayColor,
		OverlayOpacity: defaultOverlayOpacity,
		ImageFit:       defaultImageFit,
		ShowIndicators: true,
		ShowControls:   true,
	}
	if c := strings.TrimSpace(w.OverlayColor); hexColor.MatchString(c) {
		s.OverlayColor = c
	}
	if w.OverlayOpacity != nil {
		s.OverlayOpacity = clamp01(*w.OverlayOpacity)
	}
	if fit := strings.ToLower(strings.TrimSpace(w.ImageFit)); imageFits[fit] {
		s.ImageFit = fit
	}
	if w.Width > 0 {
		s.Width = w.Width
	}
	if w.Height > 0 {
		s.Height = w.Height
	}
	if w.Indicators != nil {
		s.ShowIndicators = *w.Indicators
	}
	if w.Controls != nil {
		s.ShowControls = *w.Controls
	}
	return s
}

// SliderConfig builds the engine configuration for this widget.
func (w Widget) SliderConfig() slider.Config {
	s := w.Settings()
	cfg := slider.Config{
		ID:         strings.TrimSpace(w.ID),
		Slides:     len(w.Slides),
		Transition: s.Transition,
		Autoplay:   s.Autoplay,
	}
	if s.ShowIndicators {
		cfg.Indicators = len(w.Slides)
	}
	return cfg
}

// FormatFor picks a format from a file extension. Unknown extensions are
// read as TOML.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Load reads and parses the deck at path.
func Load(path string) (Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read deck: %w", err)
	}
	return Parse(data, FormatFor(path))
}

// Parse decodes a deck. It returns ErrNoWidgets when the deck is empty.
func Parse(data []byte, format Format) (Deck, error) {
	var d Deck
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	default:
		err = toml.Unmarshal(data, &d)
	}
	if err != nil {
		return Deck{}, fmt.Errorf("parse deck: %w", err)
	}
	if len(d.Widgets) == 0 {
		return Deck{}, ErrNoWidgets
	}
	for i := range d.Widgets {
		d.Widgets[i].Title = strings.TrimSpace(d.Widgets[i].Title)
		d.Widgets[i].ID = strings.TrimSpace(d.Widgets[i].ID)
	}
	return d, nil
}

// SlideCount returns the number of slides across all widgets.
func (d Deck) SlideCount() int {
	n := 0
	for _, w := range d.Widgets {
		n += len(w.Slides)
	}
	return n
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return defaultOverlayOpacity
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
