// Package platform maps the host operating system to the download channel
// used by firebase.tools and describes the host for logging purposes.
package platform

import (
	"context"
	"errors"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// ErrUnsupportedPlatform is returned for every GOOS without a download channel.
var ErrUnsupportedPlatform = errors.New("Firebase.tools can only be installed on either linux or macos.") //nolint:staticcheck // message is user facing

// Channels maps GOOS values to the channel tags served by firebase.tools.
var Channels = map[string]string{
	"darwin": "macos",
	"linux":  "linux",
}

// Channel returns the channel tag for the given GOOS.
func Channel(goos string) (string, error) {
	channel, ok := Channels[goos]
	if !ok {
		return "", ErrUnsupportedPlatform
	}
	return channel, nil
}

// Info describes the host the step is running on.
// Platform, Family and Version are empty when they can't be detected.
type Info struct {
	OS       string
	Arch     string
	Platform string
	Family   string
	Version  string
}

func (i Info) String() string {
	var bld strings.Builder
	bld.WriteString(i.OS)
	bld.WriteString("/")
	bld.WriteString(i.Arch)

	if i.Platform != "" {
		bld.WriteString(" (")
		bld.WriteString(i.Platform)
		if i.Version != "" {
			bld.WriteString(" ")
			bld.WriteString(i.Version)
		}
		bld.WriteString(")")
	}

	return bld.String()
}

// Describe returns the host information.
// Distribution details come from gopsutil and are best effort; a failed
// lookup leaves them empty instead of returning an error.
func Describe(ctx context.Context) Info {
	info := Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	platform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return info
	}

	info.Platform = strings.ToLower(strings.TrimSpace(platform))
	info.Family = strings.ToLower(strings.TrimSpace(family))
	info.Version = strings.TrimSpace(version)

	return info
}
