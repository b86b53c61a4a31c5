package common

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// filenameMeta is the AudioMeta fallback derived purely from a filename,
// used when a container carries no embedded metadata.
type filenameMeta struct {
	title   string
	artists []string
	album   string
}

func (f *filenameMeta) GetTitle() string    { return f.title }
func (f *filenameMeta) GetArtists() []string { return f.artists }
func (f *filenameMeta) GetAlbum() string    { return f.album }
func (f *filenameMeta) Clone() AudioMeta {
	c := &filenameMeta{title: f.title, album: f.album}
	c.artists = append(c.artists, f.artists...)
	return c
}

// ParseFilenameMeta takes the filename stem, splits on '-', '_', ',',
// trims each piece, and treats the last piece as the title and every
// preceding piece as an artist, in order. A single piece is a title-only
// result; zero pieces is an empty meta.
func ParseFilenameMeta(filename string) AudioMeta {
	// macOS (HFS+/APFS) decomposes CJK and accented filenames to NFD; fold
	// to NFC first so a piece split on ASCII separators compares equal to
	// the same title typed or stored as precomposed text elsewhere.
	stem := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	stem = norm.NFC.String(stem)
	items := splitFilenameParts(stem)

	ret := &filenameMeta{}
	switch len(items) {
	case 0:
	case 1:
		ret.title = items[0]
	default:
		ret.title = items[len(items)-1]
		ret.artists = append(ret.artists, items[:len(items)-1]...)
	}
	return ret
}

func splitFilenameParts(stem string) []string {
	raw := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_' || r == ','
	})
	items := make([]string, 0, len(raw))
	for _, v := range raw {
		v = strings.TrimSpace(v)
		if v != "" {
			items = append(items, v)
		}
	}
	return items
}

// NamingFormat selects how SmartParseFilenameMeta resolves a
// filename-derived title/artist split.
type NamingFormat int

const (
	// NamingAuto runs a light heuristic over the two most common
	// conventions ("Artist - Title" and "Title - Artist") and picks
	// whichever half looks more like a song title.
	NamingAuto NamingFormat = iota
	// NamingArtistTitle assumes "Artist - Title" ordering (ParseFilenameMeta's
	// own convention, since it treats the last piece as the title).
	NamingArtistTitle
	// NamingTitleArtist assumes "Title - Artist" ordering.
	NamingTitleArtist
)

// SmartParseFilenameMeta applies NamingFormat to a two-part filename split
// on '-' (the first separator found). Neither the core pipeline nor the CLI
// calls it: the pipeline uses the fixed ParseFilenameMeta semantics, and the
// CLI's --naming-format flag only orders the output filename built from the
// decoded metadata.
func SmartParseFilenameMeta(filename string, format NamingFormat) AudioMeta {
	stem := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	stem = norm.NFC.String(stem)
	parts := strings.SplitN(stem, "-", 2)
	if len(parts) != 2 {
		return &filenameMeta{title: strings.TrimSpace(stem)}
	}
	left, right := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	switch format {
	case NamingArtistTitle:
		return &filenameMeta{title: right, artists: []string{left}}
	case NamingTitleArtist:
		return &filenameMeta{title: left, artists: []string{right}}
	default:
		if looksLikeTitle(left) && !looksLikeTitle(right) {
			return &filenameMeta{title: left, artists: []string{right}}
		}
		return &filenameMeta{title: right, artists: []string{left}}
	}
}

// looksLikeTitle is a coarse heuristic: a piece containing CJK ideographs,
// or punctuation typical of song titles, scores as a title over a piece
// that reads like a plain proper name.
func looksLikeTitle(s string) bool {
	hasCJK := false
	hasQuestionOrExclaim := false
	for _, r := range s {
		if unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) || unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r) {
			hasCJK = true
		}
		if r == '?' || r == '!' || r == '—' {
			hasQuestionOrExclaim = true
		}
	}
	return hasCJK || hasQuestionOrExclaim || strings.Contains(s, " ft.") || strings.Contains(s, " feat.")
}
