// SPDX-License-Identifier: EPL-2.0

// Package eq holds the band-scheme data model for the equalizer client.
//
// Two representations describe which frequency ranges get which gain:
//
//   - Scheme: a manually edited, ordered list of bands, each with its own
//     gain. This is the unconstrained editing mode.
//   - GroupSet: labeled preset groups, each owning one or more frequency
//     windows that share a single gain control. Groups come from the backend
//     preset catalog or from a user-supplied preset file.
//
// At any time exactly one of the two governs the output; Resolve flattens
// whichever is active into the wire format the processing backend accepts:
// a flat list of {startHz, widthHz, gain} bands.
//
// # Editing a scheme
//
//	scheme := eq.NewScheme(44100)
//	scheme.Add(eq.DefaultBand())
//	scheme.Add(eq.NewBand(500, 1500, 0.25))
//	bands := eq.Resolve(scheme, nil)
//
// # Loading a preset file
//
//	groups, err := eq.ParseGroups(data)
//	if err != nil {
//	    // Handle error
//	}
//	bands := eq.Resolve(scheme, groups)
//
// Gains are clamped to [0,2] by every mutator and parser; band order is
// insertion order and overlapping ranges are allowed.
package eq
