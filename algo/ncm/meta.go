package ncm

import "omnicrypt.dev/core/algo/common"

// meta is the capability set every NCM metadata variant implements, plus
// the format hint used to pick the sniffed extension when the container
// doesn't otherwise disclose one.
type meta interface {
	common.AudioMeta
	getFormat() string
}

// musicMeta is NCM's "music" JSON metadata variant.
type musicMeta struct {
	Format     string     `json:"format"`
	MusicName  string     `json:"musicName"`
	Artist     [][]any    `json:"artist"`
	Album      string     `json:"album"`
	AlbumPicID any        `json:"albumPicDocId"`
	AlbumPic   string     `json:"albumPic"`
	Flag       int        `json:"flag"`
	Bitrate    int        `json:"bitrate"`
	Duration   int        `json:"duration"`
	Alias      []any      `json:"alias"`
	TransNames []any      `json:"transNames"`
}

func (m *musicMeta) getFormat() string   { return m.Format }
func (m *musicMeta) GetTitle() string    { return m.MusicName }
func (m *musicMeta) GetAlbum() string    { return m.Album }
func (m *musicMeta) GetArtists() []string {
	var out []string
	for _, pair := range m.Artist {
		for _, item := range pair {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
func (m *musicMeta) Clone() common.AudioMeta {
	c := *m
	return &c
}

// djMeta is NCM's "dj" (radio programme) JSON metadata variant.
type djMeta struct {
	ProgramID       int        `json:"programId"`
	ProgramName     string     `json:"programName"`
	MainMusic       musicMeta  `json:"mainMusic"`
	DjID            int        `json:"djId"`
	DjName          string     `json:"djName"`
	DjAvatarURL     string     `json:"djAvatarUrl"`
	CreateTime      int64      `json:"createTime"`
	Brand           string     `json:"brand"`
	Serial          string     `json:"serial"`
	ProgramDesc     string     `json:"programDesc"`
	ProgramFeeType  int        `json:"programFeeType"`
	ProgramBuyed    bool       `json:"programBuyed"`
	RadioID         int        `json:"radioId"`
	RadioName       string     `json:"radioName"`
	RadioCategory   string     `json:"radioCategory"`
	RadioCategoryID int        `json:"radioCategoryId"`
	RadioDesc       string     `json:"radioDesc"`
	RadioFeeType    int        `json:"radioFeeType"`
	RadioFeeScope   int        `json:"radioFeeScope"`
	RadioBuyed      bool       `json:"radioBuyed"`
	RadioPrice      int        `json:"radioPrice"`
	RadioPurchase   int        `json:"radioPurchaseCount"`
}

func (m *djMeta) getFormat() string { return m.MainMusic.getFormat() }

func (m *djMeta) GetTitle() string {
	if m.ProgramName != "" {
		return m.ProgramName
	}
	return m.RadioName
}

func (m *djMeta) GetAlbum() string {
	if m.Brand != "" {
		return m.Brand
	}
	return m.RadioCategory
}

func (m *djMeta) GetArtists() []string {
	if m.DjName != "" {
		return []string{m.DjName}
	}
	return m.MainMusic.GetArtists()
}

func (m *djMeta) Clone() common.AudioMeta {
	c := *m
	return &c
}
