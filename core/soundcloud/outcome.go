package soundcloud

import "errors"

// Outcome is the symbolic result of a pipeline run. These are part of the
// external contract: callers branch on them to render precise messages, so
// failures are never collapsed into a generic error string.
type Outcome string

const (
	OutcomeFetchFail            Outcome = "fetch.fail"
	OutcomeCountryBlock         Outcome = "country.block"
	OutcomePaidContent          Outcome = "paid.content"
	OutcomeNoMP3                Outcome = "fetch.fail.no.mp3"
	OutcomeNoMP3Stream          Outcome = "fetch.fail.no.mp3.stream"
	OutcomeNoSegments           Outcome = "fetch.fail.no.segments"
	OutcomeNoSegmentsDownloaded Outcome = "fetch.fail.no.segments.downloaded"
	OutcomeInternalError        Outcome = "internal.error"
)

// Sentinel errors returned by the segment fetcher; the orchestrator maps
// them onto outcomes.
var (
	ErrNoStream             = errors.New("rendition activation yielded no stream url")
	ErrNoSegments           = errors.New("manifest contained no segment references")
	ErrNoSegmentsDownloaded = errors.New("every segment download failed")
)
