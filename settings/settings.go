// Package settings persists the ramp presets and the last used render
// configuration between runs as a small JSON file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wbrown/img2ascii"
)

// FileName is the settings file name inside the config directory.
const FileName = "ascii_config.json"

// Settings is the on-disk layout. Keys missing from a file keep their
// default values.
type Settings struct {
	Width  int  `json:"width"`
	Height *int `json:"height"`

	Slot1      string `json:"charset_slot1"`
	Slot2      string `json:"charset_slot2"`
	Slot3      string `json:"charset_slot3"`
	ActiveSlot int    `json:"active_slot"`

	SlotOrders [img2ascii.PresetCount]img2ascii.RampOrder `json:"slot_orders"`

	Invert        bool    `json:"invert"`
	Brightness    float64 `json:"brightness"`
	Contrast      float64 `json:"contrast"`
	LineSpacing   float64 `json:"line_spacing"`
	FrameInterval int     `json:"frame_interval"`
	Nearest       bool    `json:"nearest_sampling"`
	LastImage     string  `json:"last_image,omitempty"`
}

// Default returns the settings used when no file exists.
func Default() *Settings {
	cfg := img2ascii.DefaultConfig()
	presets := img2ascii.Presets()
	s := &Settings{
		ActiveSlot: 1,
	}
	for i, p := range presets {
		s.setSlot(i+1, p)
	}
	s.Apply(cfg)
	return s
}

// DefaultPath returns the settings path in the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "img2ascii", FileName), nil
}

// Load reads settings from path. A missing file yields the defaults and no
// error. A file that cannot be parsed yields the defaults together with
// the parse error so the caller can report it.
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		log.Printf("Settings: Failed to read %s: %v", path, err)
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		log.Printf("Settings: Failed to parse %s, using defaults: %v", path, err)
		return Default(), fmt.Errorf("failed to parse settings %s: %w", path, err)
	}
	if s.ActiveSlot < 1 || s.ActiveSlot > img2ascii.PresetCount {
		log.Printf("Settings: Active slot %d out of range, using slot 1", s.ActiveSlot)
		s.ActiveSlot = 1
	}
	return s, nil
}

// Save writes the settings to path, creating its directory. The file is
// replaced atomically.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// RememberImage records image as the last image in the file at path and
// leaves every other stored value as it is. A file that cannot be parsed
// is not overwritten.
func RememberImage(path, image string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	s.LastImage = image
	return s.Save(path)
}

// Config returns the stored render configuration.
func (s *Settings) Config() img2ascii.RenderConfig {
	cfg := img2ascii.RenderConfig{
		Width:         s.Width,
		Brightness:    s.Brightness,
		Contrast:      s.Contrast,
		Invert:        s.Invert,
		LineSpacing:   s.LineSpacing,
		FrameInterval: s.FrameInterval,
		Sampling:      img2ascii.SampleArea,
	}
	if s.Height != nil {
		cfg.Height = *s.Height
	}
	if s.Nearest {
		cfg.Sampling = img2ascii.SampleNearest
	}
	return cfg
}

// Apply records cfg as the last used configuration.
func (s *Settings) Apply(cfg img2ascii.RenderConfig) {
	s.Width = cfg.Width
	s.Height = nil
	if cfg.Height > 0 {
		h := cfg.Height
		s.Height = &h
	}
	s.Brightness = cfg.Brightness
	s.Contrast = cfg.Contrast
	s.Invert = cfg.Invert
	s.LineSpacing = cfg.LineSpacing
	s.FrameInterval = cfg.FrameInterval
	s.Nearest = cfg.Sampling == img2ascii.SampleNearest
}

// Slot returns the ramp stored in slot 1, 2 or 3.
func (s *Settings) Slot(slot int) (img2ascii.CharacterRamp, error) {
	var glyphs string
	switch slot {
	case 1:
		glyphs = s.Slot1
	case 2:
		glyphs = s.Slot2
	case 3:
		glyphs = s.Slot3
	default:
		return img2ascii.CharacterRamp{}, fmt.Errorf("%w: no ramp slot %d",
			img2ascii.ErrInvalidConfig, slot)
	}
	ramp, err := img2ascii.NewRamp(glyphs, s.SlotOrders[slot-1])
	if err != nil {
		return img2ascii.CharacterRamp{}, fmt.Errorf("ramp slot %d: %w", slot, err)
	}
	return ramp, nil
}

// Ramp returns the ramp in the active slot.
func (s *Settings) Ramp() (img2ascii.CharacterRamp, error) {
	return s.Slot(s.ActiveSlot)
}

// SetSlot validates ramp and stores it in slot 1, 2 or 3.
func (s *Settings) SetSlot(slot int, ramp img2ascii.CharacterRamp) error {
	if slot < 1 || slot > img2ascii.PresetCount {
		return fmt.Errorf("%w: no ramp slot %d", img2ascii.ErrInvalidConfig, slot)
	}
	if err := ramp.Validate(); err != nil {
		return err
	}
	s.setSlot(slot, ramp)
	return nil
}

// SetActiveSlot selects the ramp used for rendering.
func (s *Settings) SetActiveSlot(slot int) error {
	if slot < 1 || slot > img2ascii.PresetCount {
		return fmt.Errorf("%w: no ramp slot %d", img2ascii.ErrInvalidConfig, slot)
	}
	s.ActiveSlot = slot
	return nil
}

func (s *Settings) setSlot(slot int, ramp img2ascii.CharacterRamp) {
	switch slot {
	case 1:
		s.Slot1 = ramp.String()
	case 2:
		s.Slot2 = ramp.String()
	case 3:
		s.Slot3 = ramp.String()
	}
	s.SlotOrders[slot-1] = ramp.Order
}
