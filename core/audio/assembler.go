package audio

import (
	"fmt"
	"os"

	"SndHop/model"

	"github.com/bogem/id3v2/v2"
)

// Assembler reconstructs a playable MP3 from ordered HLS segments and
// writes descriptive ID3 tags from the track document.
type Assembler struct{}

// NewAssembler creates an Assembler.
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble concatenates the segment buffers, tags the result and returns
// the final artifact bytes. Tagging goes through a temporary file whose
// lifetime is scoped to this call; it is removed on every exit path.
func (a *Assembler) Assemble(segments [][]byte, meta *model.TrackMetadata) ([]byte, error) {
	tmp, err := os.CreateTemp("", "audio-*.mp3")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	for _, segment := range segments {
		if _, err := tmp.Write(segment); err != nil {
			tmp.Close()
			return nil, fmt.Errorf("write segment: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := writeTags(tmpPath, meta); err != nil {
		return nil, err
	}

	final, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read back artifact: %w", err)
	}
	return final, nil
}

// writeTags sets the ID3 frames present in the metadata. Absent fields are
// left unset rather than written as empty strings.
func writeTags(path string, meta *model.TrackMetadata) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("open for tagging: %w", err)
	}
	defer tag.Close()

	if meta.Title != "" {
		tag.SetTitle(meta.Title)
	}
	if meta.User.Username != "" {
		tag.SetArtist(meta.User.Username)
	}
	if album := meta.AlbumTitle(); album != "" {
		tag.SetAlbum(album)
	}
	if meta.Genre != "" {
		tag.SetGenre(meta.Genre)
	}
	if meta.Description != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding: id3v2.EncodingUTF8,
			Language: "eng",
			Text:     meta.Description,
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("save tags: %w", err)
	}
	return nil
}
