// SPDX-License-Identifier: EPL-2.0

package eq

// Resolve flattens the active band source into the wire format the backend
// accepts. When groups is non-empty it wins: every window of every group
// becomes one flat band carrying the group's gain. Otherwise the scheme's
// bands pass through unchanged.
//
// Resolve is pure and never fails; empty inputs yield an empty list. No
// validation against the sample rate happens here; out-of-range bands are
// tolerated and simply have no audible effect on the backend side.
func Resolve(scheme *Scheme, groups GroupSet) []Band {
	if len(groups) > 0 {
		bands := make([]Band, 0, groups.WindowCount())
		for _, g := range groups {
			for _, w := range g.Windows {
				bands = append(bands, Band{
					StartHz: w.StartHz,
					WidthHz: w.WidthHz,
					Gain:    g.Gain,
				})
			}
		}
		return bands
	}

	if scheme == nil || len(scheme.Bands) == 0 {
		return []Band{}
	}

	bands := make([]Band, len(scheme.Bands))
	copy(bands, scheme.Bands)
	return bands
}
