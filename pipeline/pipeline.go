// Package pipeline is the dispatch façade consumed by the CLI: it turns a
// buffer plus extension into decoded audio bytes, trying every registered
// candidate decoder for that extension in registration order.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"omnicrypt.dev/core/algo/common"
	_ "omnicrypt.dev/core/algo/formats"
	"omnicrypt.dev/core/internal/sniff"
)

// Result is everything GetResult recovers from a successfully decoded file:
// the plaintext audio bytes, the sniffed output extension (dot-less), and
// whatever metadata/cover the container (or the filename fallback) yielded.
type Result struct {
	Audio     []byte
	Ext       string
	Meta      common.AudioMeta
	CoverArt  []byte
	CoverMIME string
}

// GetExt returns path's extension without its leading dot, lowercased to
// match the case-sensitive registry the way every format package registers
// its extensions (all lowercase).
func GetExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// DecInit constructs and validates the first candidate decoder registered
// for ext that succeeds validation, in registration order. skipNoop drops
// Raw passthrough entries from consideration, matching CandidatesFor.
//
// Per-candidate Validate panics (a malformed container running past a
// cursor's bounds) are recovered here and folded into that candidate's
// failure message, rather than crashing the whole dispatch; GetResult
// recovers DecodeBytes panics the same way.
func DecInit(buf []byte, skipNoop bool, ext string) (common.Decoder, error) {
	candidates := common.CandidatesFor(ext, skipNoop)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %q", common.ErrNoDecoderForExtension, ext)
	}

	var failures []string
	for _, factory := range candidates {
		dec, err := validateCandidate(factory, buf, ext)
		if err == nil {
			return dec, nil
		}
		failures = append(failures, err.Error())
	}
	return nil, fmt.Errorf("%w for %q: %s", ErrNoCandidates, ext, strings.Join(failures, ", "))
}

func validateCandidate(factory common.DecoderFactory, buf []byte, ext string) (dec common.Decoder, err error) {
	defer func() {
		if r := recover(); r != nil {
			dec = nil
			err = fmt.Errorf("panic during validate: %v", r)
		}
	}()

	dec = factory(&common.DecoderParams{Buffer: buf, Extension: ext})
	if vErr := dec.Validate(); vErr != nil {
		return nil, vErr
	}
	return dec, nil
}

// GetResult decodes dec (whose Validate has already succeeded), sniffs the
// output, and — only for .mp3/.wav output, per the original's tagging scope
// — recovers cover art and metadata, falling back to filename-derived meta
// when the container carries none and filename is non-empty.
func GetResult(dec common.Decoder, filename string) (*Result, error) {
	audio, err := decodeBytes(dec)
	if err != nil {
		return nil, err
	}

	ext, _ := sniff.AudioExtension(audio)
	res := &Result{Audio: audio, Ext: strings.TrimPrefix(ext, ".")}

	if ext != ".mp3" && ext != ".wav" {
		return res, nil
	}

	if getter, ok := dec.(common.AudioMetaGetter); ok {
		if meta, metaErr := getter.GetAudioMeta(); metaErr == nil {
			res.Meta = meta
		}
	}
	if res.Meta == nil && filename != "" {
		res.Meta = common.ParseFilenameMeta(filename)
	}

	if getter, ok := dec.(common.CoverImageGetter); ok {
		if cover, coverErr := getter.GetCoverImage(); coverErr == nil && len(cover) > 0 {
			if mime, ok := sniff.ImageMIME(cover); ok {
				res.CoverArt = cover
				res.CoverMIME = mime
			}
		}
	}
	return res, nil
}

func decodeBytes(dec common.Decoder) (buf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf = nil
			err = fmt.Errorf("panic during decode_bytes: %v", r)
		}
	}()
	return dec.DecodeBytes()
}

// Decode is the one-call convenience wrapper most callers want: dispatch,
// decode, and produce in a single step.
func Decode(buf []byte, ext string, skipNoop bool, filename string) (*Result, error) {
	dec, err := DecInit(buf, skipNoop, ext)
	if err != nil {
		return nil, err
	}
	return GetResult(dec, filename)
}

// ErrNoCandidates is returned alongside a joined per-candidate failure
// string when every registered decoder for an extension fails validation.
var ErrNoCandidates = errors.New("no candidate decoder succeeded")
