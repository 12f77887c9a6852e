package soundcloud

import "SndHop/model"

// SelectRendition returns the first transcoding the pipeline can consume,
// or nil when the track offers none. Only mp3_1_0 is supported; there is
// no fallback preset because the assembler and tagger assume MP3 frames.
func SelectRendition(meta *model.TrackMetadata) *model.Transcoding {
	for i := range meta.Media.Transcodings {
		if meta.Media.Transcodings[i].Preset == model.TargetPreset {
			return &meta.Media.Transcodings[i]
		}
	}
	return nil
}
