// Package binary provides utilities to provision external binaries
// on the machine running a CI step.
//
// At the core, a [Binary] is a description indicating the binary name,
// the desired version and an origin pointing at where to obtain the
// binary from.
//
// Origins implement the logic needed to place the binary on disk. The only
// origin shipped is [RemoteBinaryDownload], for binaries that can be
// downloaded directly from a url. Any other source can be supported by
// fulfilling the [Origin] interface.
//
// The template passed as argument to the Install function contains all the
// information regarding the environment this code is running in, to tailor
// the installation process, e.g. using the GOOS value to point to the binary
// built for the platform.
//
// example usage
//
//	firebase := binary.New(
//		"firebase",
//		"v12.4.0",
//		binary.RemoteBinaryDownload("https://firebase.tools/bin/{{.GOOS}}/{{.Version}}"),
//		binary.WithDirectory("/opt/tools"),
//		// firebase.tools publishes darwin builds under the macos channel
//		binary.WithGOOSMapping(map[string]string{"darwin": "macos"}),
//	)
//
//	if err := firebase.Install(ctx); err != nil {
//		return fmt.Errorf("failed to download firebase: %w", err)
//	}
//
//	if err := firebase.MakeExecutable(); err != nil {
//		return err
//	}
//
//	exec.Command(firebase.BinPath(), "--version").Run()
package binary
