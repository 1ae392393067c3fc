package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script describes a recorded pointer path.
type Script struct {
	Container struct {
		X      float64 `yaml:"x"`
		Y      float64 `yaml:"y"`
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"container"`
	Slots      int     `yaml:"slots"`
	SlotWidth  float64 `yaml:"slot_width"`
	SlotHeight float64 `yaml:"slot_height"`
	Variant    int     `yaml:"variant"`
	// TailFrames are pumped after the last step so animations can finish.
	TailFrames int    `yaml:"tail_frames"`
	Steps      []Step `yaml:"steps"`
}

// Step is one pointer sample followed by Frames scheduler frames.
type Step struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Touch  bool    `yaml:"touch"`
	Frames int     `yaml:"frames"`
	// Resize replaces the container size before the sample is dispatched.
	Resize *struct {
		Width  float64 `yaml:"width"`
		Height float64 `yaml:"height"`
	} `yaml:"resize"`
}

// ParseScript decodes a YAML script and fills defaults.
func ParseScript(data []byte) (*Script, error) {
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.Container.Width <= 0 || s.Container.Height <= 0 {
		s.Container.Width, s.Container.Height = 1280, 720
	}
	if s.Slots <= 0 {
		s.Slots = 8
	}
	if s.SlotWidth <= 0 {
		s.SlotWidth = 190
	}
	if s.SlotHeight <= 0 {
		s.SlotHeight = s.SlotWidth / 1.1
	}
	for i := range s.Steps {
		if s.Steps[i].Frames <= 0 {
			s.Steps[i].Frames = 1
		}
	}
	return s, nil
}

// LoadScript reads and parses a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

// LineScript builds a straight path from (x0, y0) to (x1, y1) with n samples.
func LineScript(x0, y0, x1, y1 float64, n int) *Script {
	s, _ := ParseScript(nil)
	if n < 2 {
		n = 2
	}
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		s.Steps = append(s.Steps, Step{
			X:      x0 + (x1-x0)*t,
			Y:      y0 + (y1-y0)*t,
			Frames: 1,
		})
	}
	s.TailFrames = 60
	return s
}
