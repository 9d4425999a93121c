package natsq

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ProtocolVersion is the version of the request/reply protocol spoken by
// this build. Responders reject clients with a different major version.
const ProtocolVersion = "1.0.0"

// Compatible reports whether a peer speaking remote can talk to a peer
// speaking local: both must share a major version.
func Compatible(local, remote string) (bool, error) {
	lv, err := parseSemver(local)
	if err != nil {
		return false, fmt.Errorf("parsing local version %q: %w", local, err)
	}
	rv, err := parseSemver(remote)
	if err != nil {
		return false, fmt.Errorf("parsing remote version %q: %w", remote, err)
	}
	return lv.Major() == rv.Major(), nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
