package model

// Credential is the pair of ephemeral values scraped from the SoundCloud
// web app that unlocks the private api-v2 endpoints. It rotates on
// SoundCloud's schedule; staleness only shows up as a failing resolve call.
type Credential struct {
	Version  string `json:"version"`  // 10 ASCII digits
	ClientID string `json:"clientId"` // 32 alphanumeric characters
}

// Access policy values returned by the resolve endpoint.
const (
	PolicyBlock = "BLOCK" // geo-restricted, no audio available here
	PolicySnip  = "SNIP"  // preview-only, full audio gated behind Go+
)

// TargetPreset is the one transcoding preset the pipeline can consume.
const TargetPreset = "mp3_1_0"

// TrackMetadata is the subset of the resolve response the pipeline reads.
// The real document is much larger; unknown fields are ignored on decode.
type TrackMetadata struct {
	Title              string             `json:"title"`
	Genre              string             `json:"genre"`
	Description        string             `json:"description"`
	Policy             string             `json:"policy"`
	TrackAuthorization string             `json:"track_authorization"`
	User               User               `json:"user"`
	Media              Media              `json:"media"`
	PublisherMetadata  *PublisherMetadata `json:"publisher_metadata"`
}

// User is the uploader of a track.
type User struct {
	Username string `json:"username"`
}

// Media lists the renditions SoundCloud offers for a track.
type Media struct {
	Transcodings []Transcoding `json:"transcodings"`
}

// Transcoding is one encoded rendition of a track. URL is a template that
// must be activated (with client_id and track_authorization) to obtain the
// actual stream manifest.
type Transcoding struct {
	Preset string `json:"preset"`
	URL    string `json:"url"`
}

// AlbumTitle returns the publisher album title, or "" when the publisher
// block is absent.
func (m *TrackMetadata) AlbumTitle() string {
	if m.PublisherMetadata == nil {
		return ""
	}
	return m.PublisherMetadata.AlbumTitle
}

// PublisherMetadata carries label-supplied fields; often absent entirely.
type PublisherMetadata struct {
	AlbumTitle string `json:"album_title"`
}
