// SPDX-License-Identifier: EPL-2.0

package eqlab

import (
	"github.com/ik5/eqlab/audio"
	"github.com/ik5/eqlab/formats/aiff"
	"github.com/ik5/eqlab/formats/mp3"
	"github.com/ik5/eqlab/formats/vorbis"
	"github.com/ik5/eqlab/formats/wav"
)

// DefaultRegistry returns a decoder registry with every built-in format
// wired in. The keys match common file extensions.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	return r
}
