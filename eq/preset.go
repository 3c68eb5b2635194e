// SPDX-License-Identifier: EPL-2.0

package eq

import (
	"encoding/json"
	"fmt"
)

// Window is one frequency range owned by a preset group. It carries no gain
// of its own; the owning group's gain applies to all of its windows.
type Window struct {
	StartHz float64 `json:"startHz"`
	WidthHz float64 `json:"widthHz"`
}

// Center is the frequency a test tone for this window is placed at,
// floored at 20 Hz so degenerate windows still produce an audible tone.
func (w Window) Center() float64 {
	width := w.WidthHz
	if width < 0 {
		width = 0
	}

	center := w.StartHz + width*0.5
	if center < 20 {
		center = 20
	}
	return center
}

// Group is a labeled cluster of windows sharing one gain control, e.g.
// "Vocals/Lead" covering 1500-5000 Hz. A group without windows is legal and
// simply contributes nothing when resolved.
type Group struct {
	Label   string
	Windows []Window
	Gain    float64
}

// UnmarshalJSON maps a raw slider entry into a Group, applying the default
// substitutions once, at the boundary: a missing or non-numeric gain becomes
// 1, missing windows become an empty list, and the gain is clamped.
func (g *Group) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label   string          `json:"label"`
		Windows []Window        `json:"windows"`
		Gain    json.RawMessage `json:"gain"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w", err)
	}

	g.Label = raw.Label
	g.Windows = raw.Windows
	if g.Windows == nil {
		g.Windows = []Window{}
	}

	// json.Unmarshal treats "null" as a no-op, so it must be filtered here
	// or a null gain would stay at the float zero value instead of 1.
	g.Gain = 1
	if len(raw.Gain) > 0 && string(raw.Gain) != "null" {
		var gain float64
		if err := json.Unmarshal(raw.Gain, &gain); err == nil {
			g.Gain = clampGain(gain)
		}
	}

	return nil
}

// MarshalJSON writes the slider entry shape used by preset files.
func (g Group) MarshalJSON() ([]byte, error) {
	windows := g.Windows
	if windows == nil {
		windows = []Window{}
	}

	doc := struct {
		Label   string   `json:"label"`
		Windows []Window `json:"windows"`
		Gain    float64  `json:"gain"`
	}{g.Label, windows, g.Gain}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// GroupSet is the preset-driven alternative to a manually edited Scheme.
type GroupSet []Group

// ParseGroups reads a preset document {"sliders": [...]}, as served by the
// backend catalog or saved from a previous session. A document without a
// "sliders" field parses to an empty set; the caller decides whether an
// empty set is worth keeping.
func ParseGroups(data []byte) (GroupSet, error) {
	var doc struct {
		Sliders []Group `json:"sliders"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if doc.Sliders == nil {
		return GroupSet{}, nil
	}
	return GroupSet(doc.Sliders), nil
}

// MarshalJSON writes the {"sliders": [...]} preset document.
func (gs GroupSet) MarshalJSON() ([]byte, error) {
	sliders := []Group(gs)
	if sliders == nil {
		sliders = []Group{}
	}

	doc := struct {
		Sliders []Group `json:"sliders"`
	}{sliders}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return data, nil
}

// WindowCount reports the total number of windows across all groups.
func (gs GroupSet) WindowCount() int {
	n := 0
	for _, g := range gs {
		n += len(g.Windows)
	}
	return n
}

// ToneCenters lists the test-tone center frequency of every window, in
// group order then window order.
func (gs GroupSet) ToneCenters() []float64 {
	centers := make([]float64, 0, gs.WindowCount())
	for _, g := range gs {
		for _, w := range g.Windows {
			centers = append(centers, w.Center())
		}
	}
	return centers
}
