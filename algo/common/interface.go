// Package common holds the shared data model, registry, and base decoders
// used by every format-specific package under algo/.
package common

// DecoderParams is the immutable input bundle handed to every decoder
// factory: a shared buffer and the lowercase, dot-less extension the file
// arrived with.
type DecoderParams struct {
	Buffer    []byte
	Extension string
}

// Decoder is a stateful per-file object. A fresh instance is produced by a
// DecoderFactory; Validate must succeed before DecodeBytes may be called.
type Decoder interface {
	Validate() error
	DecodeBytes() ([]byte, error)
}

// CoverImageGetter is an optional Decoder capability for formats that embed
// cover art in the container.
type CoverImageGetter interface {
	GetCoverImage() ([]byte, error)
}

// AudioMetaGetter is an optional Decoder capability for formats that embed
// track metadata in the container.
type AudioMetaGetter interface {
	GetAudioMeta() (AudioMeta, error)
}

// Decrypter is the stream-cipher engine a Decoder installs during Validate.
// Decrypt mutates buf in place and is position-dependent: it must be called
// at most once per file.
type Decrypter interface {
	CheckUninit() bool
	Decrypt(buf []byte) error
}

// AudioMeta is the read-only capability set exposed by every metadata
// source, whether parsed from a container or derived from a filename.
type AudioMeta interface {
	GetTitle() string
	GetArtists() []string
	GetAlbum() string
	Clone() AudioMeta
}

// DecoderFactory builds a fresh Decoder instance from params. Registered
// once per (extension, DecoderType) pair via RegisterDecoder.
type DecoderFactory func(p *DecoderParams) Decoder
