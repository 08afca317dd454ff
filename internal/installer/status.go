package installer

import (
	"errors"
	"strconv"
	"strings"
)

// StatusReport describes the installation state of a destination.
type StatusReport struct {
	// Installed is false when the destination has no manifest. That is an
	// informational state, not an error.
	Installed bool

	// Manifest is the recorded installation, when present.
	Manifest *Manifest

	// CurrentVersion is the running tool's rule set version.
	CurrentVersion string
}

// OutOfDate reports whether the installed version lags the current one.
func (r *StatusReport) OutOfDate() bool {
	if !r.Installed {
		return false
	}
	return versionLess(r.Manifest.Version, r.CurrentVersion)
}

// Status inspects a destination without touching it.
func Status(dest, currentVersion string) (*StatusReport, error) {
	m, err := ReadManifest(dest)
	if err != nil {
		if errors.Is(err, ErrNoManifest) {
			return &StatusReport{CurrentVersion: currentVersion}, nil
		}
		return nil, err
	}
	return &StatusReport{Installed: true, Manifest: m, CurrentVersion: currentVersion}, nil
}

// versionLess compares dotted version strings segment by segment, numeric
// where possible. Non-numeric segments fall back to string comparison.
func versionLess(a, b string) bool {
	as := strings.Split(strings.TrimPrefix(a, "v"), ".")
	bs := strings.Split(strings.TrimPrefix(b, "v"), ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if an != bn {
				return an < bn
			}
			continue
		}
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}
