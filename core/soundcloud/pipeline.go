package soundcloud

import (
	"context"
	"errors"

	"SndHop/logger"
	"SndHop/model"
)

// CredentialSource supplies the ephemeral API credential. Behind it sits
// the landing-page scraper plus a cache; the orchestrator only sees this
// narrow capability so the discovery strategy can be swapped out.
type CredentialSource interface {
	Discover(ctx context.Context) (*model.Credential, error)
	Invalidate(ctx context.Context)
}

// TrackResolver translates a track URL into the platform's track document.
type TrackResolver interface {
	ResolveTrack(ctx context.Context, trackURL string, cred *model.Credential) (*model.TrackMetadata, error)
	ResolveShortURL(ctx context.Context, rawURL string) string
}

// SegmentFetcher turns a rendition into ordered segment payloads.
type SegmentFetcher interface {
	FetchSegments(ctx context.Context, rendition model.Transcoding, trackAuth string, cred *model.Credential) ([][]byte, error)
}

// Assembler concatenates segments into a tagged audio artifact.
type Assembler interface {
	Assemble(segments [][]byte, meta *model.TrackMetadata) ([]byte, error)
}

// Uploader persists an artifact and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte) (string, error)
}

// Result is the caller-visible outcome of a pipeline run.
type Result struct {
	OK   bool    `json:"ok"`
	URL  string  `json:"url,omitempty"`
	Code Outcome `json:"code,omitempty"`
}

func failure(code Outcome) Result {
	return Result{OK: false, Code: code}
}

// Pipeline resolves a public track URL into a permanently hosted MP3.
type Pipeline struct {
	creds     CredentialSource
	resolver  TrackResolver
	fetcher   SegmentFetcher
	assembler Assembler
	uploader  Uploader
}

// NewPipeline wires the pipeline stages together.
func NewPipeline(creds CredentialSource, resolver TrackResolver, fetcher SegmentFetcher, assembler Assembler, uploader Uploader) *Pipeline {
	return &Pipeline{
		creds:     creds,
		resolver:  resolver,
		fetcher:   fetcher,
		assembler: assembler,
		uploader:  uploader,
	}
}

// ResolveAndUpload runs the full pipeline for one track URL. Every failure
// maps to a symbolic outcome; nothing is retried within a run. A caller
// that wants a retry re-invokes the pipeline, which also picks up a fresh
// credential if the old one was invalidated.
func (p *Pipeline) ResolveAndUpload(ctx context.Context, trackURL string) Result {
	cred, err := p.creds.Discover(ctx)
	if err != nil || cred == nil {
		// Discovery is best-effort infrastructure: absorb the error and
		// report the resolve as failed rather than blowing up.
		logger.Warn("credential discovery failed", logger.ErrorField(err))
		return failure(OutcomeFetchFail)
	}

	trackURL = p.resolver.ResolveShortURL(ctx, trackURL)

	meta, err := p.resolver.ResolveTrack(ctx, trackURL, cred)
	if err != nil {
		var re *ResolveError
		if errors.As(err, &re) && re.AuthFailure() {
			// Credential likely rotated; drop it so the next run rediscovers.
			p.creds.Invalidate(ctx)
		}
		logger.Error("track resolve failed",
			logger.String("url", trackURL), logger.ErrorField(err))
		return failure(OutcomeFetchFail)
	}

	switch meta.Policy {
	case model.PolicyBlock:
		return failure(OutcomeCountryBlock)
	case model.PolicySnip:
		return failure(OutcomePaidContent)
	}

	rendition := SelectRendition(meta)
	if rendition == nil {
		return failure(OutcomeNoMP3)
	}

	segments, err := p.fetcher.FetchSegments(ctx, *rendition, meta.TrackAuthorization, cred)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoStream):
			return failure(OutcomeNoMP3Stream)
		case errors.Is(err, ErrNoSegments):
			return failure(OutcomeNoSegments)
		case errors.Is(err, ErrNoSegmentsDownloaded):
			return failure(OutcomeNoSegmentsDownloaded)
		}
		logger.Error("segment fetch failed", logger.ErrorField(err))
		return failure(OutcomeInternalError)
	}

	artifact, err := p.assembler.Assemble(segments, meta)
	if err != nil {
		logger.Error("audio assembly failed", logger.ErrorField(err))
		return failure(OutcomeInternalError)
	}

	publicURL, err := p.uploader.Upload(ctx, artifact)
	if err != nil {
		logger.Error("artifact upload failed", logger.ErrorField(err))
		return failure(OutcomeInternalError)
	}

	logger.Info("track archived",
		logger.String("track", trackURL),
		logger.Int("segments", len(segments)),
		logger.Int("bytes", len(artifact)))
	return Result{OK: true, URL: publicURL}
}
