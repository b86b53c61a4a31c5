package common

import (
	"reflect"
	"testing"
)

func TestParseFilenameMeta(t *testing.T) {
	tests := []struct {
		name     string
		wantMeta AudioMeta
	}{
		{
			name:     "test1",
			wantMeta: &filenameMeta{title: "test1"},
		},
		{
			name:     "周杰伦 - 晴天.flac",
			wantMeta: &filenameMeta{artists: []string{"周杰伦"}, title: "晴天"},
		},
		{
			name:     "Alan Walker _ Iselin Solheim - Sing Me to Sleep.flac",
			wantMeta: &filenameMeta{artists: []string{"Alan Walker", "Iselin Solheim"}, title: "Sing Me to Sleep"},
		},
		{
			name:     "Christopher,Madcon - Limousine.flac",
			wantMeta: &filenameMeta{artists: []string{"Christopher", "Madcon"}, title: "Limousine"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if gotMeta := ParseFilenameMeta(tt.name); !reflect.DeepEqual(gotMeta, tt.wantMeta) {
				t.Errorf("ParseFilenameMeta() = %#v, want %#v", gotMeta, tt.wantMeta)
			}
		})
	}
}

func TestSmartParseFilenameMeta(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		format   NamingFormat
		wantMeta AudioMeta
	}{
		{
			name:     "single word has no artist",
			filename: "test1",
			format:   NamingAuto,
			wantMeta: &filenameMeta{title: "test1"},
		},
		{
			name:     "auto keeps artist-title when both halves are CJK",
			filename: "周杰伦 - 晴天.flac",
			format:   NamingAuto,
			wantMeta: &filenameMeta{artists: []string{"周杰伦"}, title: "晴天"},
		},
		{
			name:     "explicit artist-title ordering",
			filename: "Taylor Swift - Love Story.mp3",
			format:   NamingArtistTitle,
			wantMeta: &filenameMeta{artists: []string{"Taylor Swift"}, title: "Love Story"},
		},
		{
			name:     "explicit title-artist ordering",
			filename: "Love Story - Taylor Swift.mp3",
			format:   NamingTitleArtist,
			wantMeta: &filenameMeta{artists: []string{"Taylor Swift"}, title: "Love Story"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmartParseFilenameMeta(tt.filename, tt.format); !reflect.DeepEqual(got, tt.wantMeta) {
				t.Errorf("SmartParseFilenameMeta() = %#v, want %#v", got, tt.wantMeta)
			}
		})
	}
}

func TestFilenameMetaClone(t *testing.T) {
	m := ParseFilenameMeta("周杰伦 - 晴天.flac")
	clone := m.Clone()
	if !reflect.DeepEqual(m, clone) {
		t.Fatalf("Clone() = %#v, want deep-equal copy %#v", clone, m)
	}
	clone.(*filenameMeta).artists[0] = "mutated"
	if m.GetArtists()[0] == "mutated" {
		t.Fatalf("Clone() shares backing array with the original")
	}
}
