package kiosk

import (
	"math"
	"net/url"
	"strconv"
	"time"
)

// Navigation query parameters.
const (
	ParamKiosk     = "kiosk"       // "1" activates kiosk mode for the load
	ParamTimestamp = "kiosk_ts"    // cache-bust, milliseconds since the epoch
	ParamCover     = "kiosk_cover" // arrival cover duration in milliseconds
	ParamMessage   = "kiosk_msg"   // arrival caption
)

// Descriptor is the transition handed from a departing load to the arriving
// one. It only ever travels in the URL.
type Descriptor struct {
	Cover   time.Duration
	Message string
}

// Covered reports whether the arrival should start behind the veil.
func (d Descriptor) Covered() bool {
	return d.Cover > 0
}

// Arrival is what a load learns from its own URL.
type Arrival struct {
	// Active is true when the kiosk flag is present
	Active bool

	// Descriptor is the zero value for a plain arrival
	Descriptor Descriptor
}

// ParseArrival reads the kiosk flag and transition descriptor from rawURL.
// Anything unparseable reads as absent.
func ParseArrival(rawURL string) Arrival {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Arrival{}
	}
	q := u.Query()

	arrival := Arrival{Active: q.Get(ParamKiosk) == "1"}
	if !arrival.Active {
		return arrival
	}

	cover, err := strconv.ParseFloat(q.Get(ParamCover), 64)
	if err != nil || math.IsNaN(cover) || math.IsInf(cover, 0) || cover <= 0 {
		return arrival
	}

	arrival.Descriptor = Descriptor{
		Cover:   millis(cover),
		Message: q.Get(ParamMessage),
	}
	return arrival
}

// TargetOptions controls the parameters attached to an outgoing URL.
type TargetOptions struct {
	// CacheBust appends Now as kiosk_ts
	CacheBust bool
	Now       time.Time

	// Descriptor is attached when covered
	Descriptor Descriptor
}

// Target builds the kiosk URL of a playlist entry. Query parameters already
// on the entry are kept; kiosk parameters are replaced.
func (s *Site) Target(entry string, opts TargetOptions) (string, error) {
	u, err := s.Resolve(entry)
	if err != nil {
		return "", err
	}

	q := u.Query()
	q.Set(ParamKiosk, "1")
	q.Del(ParamTimestamp)
	q.Del(ParamCover)
	q.Del(ParamMessage)

	if opts.CacheBust {
		q.Set(ParamTimestamp, strconv.FormatInt(opts.Now.UnixMilli(), 10))
	}
	if opts.Descriptor.Covered() {
		q.Set(ParamCover, strconv.FormatInt(opts.Descriptor.Cover.Milliseconds(), 10))
		if opts.Descriptor.Message != "" {
			q.Set(ParamMessage, opts.Descriptor.Message)
		}
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}
