package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"SndHop/model"

	"github.com/bogem/id3v2/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTags(t *testing.T, artifact []byte) *id3v2.Tag {
	t.Helper()

	path := filepath.Join(t.TempDir(), "artifact.mp3")
	require.NoError(t, os.WriteFile(path, artifact, 0644))

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	require.NoError(t, err)
	t.Cleanup(func() { tag.Close() })
	return tag
}

func TestAssembleConcatenatesInOrder(t *testing.T) {
	segments := [][]byte{[]byte("seg0"), []byte("seg2"), []byte("seg4")}
	meta := &model.TrackMetadata{Title: "T", User: model.User{Username: "A"}}

	artifact, err := NewAssembler().Assemble(segments, meta)
	require.NoError(t, err)

	// The tag is prepended; the audio payload itself must be the ordered
	// concatenation of the segments.
	assert.True(t, bytes.HasSuffix(artifact, []byte("seg0seg2seg4")))
}

func TestAssembleTagRoundTrip(t *testing.T) {
	segments := [][]byte{[]byte("audio-bytes")}
	meta := &model.TrackMetadata{
		Title:       "T",
		Genre:       "gothangelz",
		Description: "a comment",
		User:        model.User{Username: "A"},
		PublisherMetadata: &model.PublisherMetadata{
			AlbumTitle: "The Album",
		},
	}

	artifact, err := NewAssembler().Assemble(segments, meta)
	require.NoError(t, err)

	tag := readTags(t, artifact)
	assert.Equal(t, "T", tag.Title())
	assert.Equal(t, "A", tag.Artist())
	assert.Equal(t, "The Album", tag.Album())
	assert.Equal(t, "gothangelz", tag.Genre())
}

func TestAssembleOmitsAbsentFields(t *testing.T) {
	segments := [][]byte{[]byte("audio-bytes")}
	meta := &model.TrackMetadata{
		Title: "T",
		User:  model.User{Username: "A"},
		// no album, genre or description
	}

	artifact, err := NewAssembler().Assemble(segments, meta)
	require.NoError(t, err)

	tag := readTags(t, artifact)
	assert.Equal(t, "T", tag.Title())
	assert.Equal(t, "A", tag.Artist())
	assert.Empty(t, tag.Album())
	assert.Empty(t, tag.Genre())
}

func TestAssembleCleansUpTempFiles(t *testing.T) {
	before, err := filepath.Glob(filepath.Join(os.TempDir(), "audio-*.mp3"))
	require.NoError(t, err)

	_, err = NewAssembler().Assemble([][]byte{[]byte("x")}, &model.TrackMetadata{Title: "T"})
	require.NoError(t, err)

	after, err := filepath.Glob(filepath.Join(os.TempDir(), "audio-*.mp3"))
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}
