// Package tagwriter is the concrete pipeline.TagWriter the CLI wires in: it
// writes ID3v2.4 tags for mp3/wav output (github.com/bogem/id3v2/v2) and
// Vorbis-comment + picture blocks for flac output
// (github.com/go-flac/go-flac + flacvorbis + flacpicture), following the
// call shape demonstrated end to end in the pack's ncmcrypt reference.
package tagwriter

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"
)

// Writer implements pipeline.TagWriter.
type Writer struct{}

func New() Writer { return Writer{} }

func (Writer) WriteTags(audio []byte, ext string, title string, artists []string, album string, cover []byte, coverMIME string) ([]byte, error) {
	switch ext {
	case "mp3", "wav":
		return writeID3(audio, title, artists, album, cover, coverMIME)
	case "flac":
		return writeFlacTags(audio, title, artists, album, cover, coverMIME)
	default:
		return audio, nil
	}
}

func writeID3(audio []byte, title string, artists []string, album string, cover []byte, coverMIME string) ([]byte, error) {
	tag, err := id3v2.ParseReader(bytes.NewReader(audio), id3v2.Options{Parse: true})
	if err != nil {
		// Not all Raw passthrough mp3 files already carry an ID3 tag; start fresh.
		tag = id3v2.NewEmptyTag()
	}
	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(title)
	tag.SetArtist(strings.Join(artists, ", "))
	tag.SetAlbum(album)
	tag.DeleteFrames(tag.CommonID("Comments"))
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	if coverMIME != "" {
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    coverMIME,
			PictureType: id3v2.PTFrontCover,
			Picture:     cover,
		})
	}

	var out bytes.Buffer
	if _, err := tag.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("tagwriter: write id3: %w", err)
	}
	// WriteTo emits the tag alone; append the audio that followed any
	// existing ID3v2 tag so the result is the tagged stream.
	body := audio
	if len(audio) >= 10 && string(audio[:3]) == "ID3" {
		size := 10 + (int(audio[6]&0x7f)<<21 | int(audio[7]&0x7f)<<14 | int(audio[8]&0x7f)<<7 | int(audio[9]&0x7f))
		if audio[5]&0x10 != 0 {
			size += 10 // footer
		}
		if size <= len(audio) {
			body = audio[size:]
		}
	}
	out.Write(body)
	return out.Bytes(), nil
}

func writeFlacTags(audio []byte, title string, artists []string, album string, cover []byte, coverMIME string) ([]byte, error) {
	// go-flac's File is read/written by path, not by byte slice, so the
	// tagging round trip goes through a scratch temp file, matching the
	// call shape the reference ncm tagger uses (flac.ParseFile / Save).
	tmp, err := os.CreateTemp("", "omnicrypt-*.flac")
	if err != nil {
		return nil, fmt.Errorf("tagwriter: scratch file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("tagwriter: write scratch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("tagwriter: close scratch file: %w", err)
	}

	f, err := flac.ParseFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("tagwriter: parse flac: %w", err)
	}

	cmts := flacvorbis.New()
	cmtIdx := -1
	for idx, meta := range f.Meta {
		if meta.Type == flac.VorbisComment {
			if parsed, perr := flacvorbis.ParseFromMetaDataBlock(*meta); perr == nil {
				cmts = parsed
			}
			cmtIdx = idx
			break
		}
	}
	_ = cmts.Add(flacvorbis.FIELD_TITLE, title)
	_ = cmts.Add(flacvorbis.FIELD_ARTIST, strings.Join(artists, ", "))
	_ = cmts.Add(flacvorbis.FIELD_ALBUM, album)
	cmtBlock := cmts.Marshal()
	if cmtIdx >= 0 {
		f.Meta[cmtIdx] = &cmtBlock
	} else {
		f.Meta = append(f.Meta, &cmtBlock)
	}

	if coverMIME != "" {
		pic, perr := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "", cover, coverMIME)
		if perr != nil {
			return nil, fmt.Errorf("tagwriter: build flac picture: %w", perr)
		}
		picBlock := pic.Marshal()
		f.Meta = append(f.Meta, &picBlock)
	}

	if err := f.Save(tmpPath); err != nil {
		return nil, fmt.Errorf("tagwriter: save flac: %w", err)
	}
	tagged, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("tagwriter: read tagged scratch file: %w", err)
	}
	return tagged, nil
}
