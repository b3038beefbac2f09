package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

var currentBuild = sync.OnceValue(func() buildInfo {
	return resolveBuildInfo(version, commit, date, readBuildInfo())
})

// readBuildInfo returns the embedded module build info, or nil.
func readBuildInfo() *debug.BuildInfo {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	return bi
}

// resolveBuildInfo fills each field from ldflags first, then from the
// module build info, then a placeholder.
func resolveBuildInfo(ldVersion, ldCommit, ldDate string, bi *debug.BuildInfo) buildInfo {
	info := buildInfo{
		Version:   "(devel)",
		Commit:    "unknown",
		Date:      "unknown",
		GoVersion: runtime.Version(),
	}

	if bi != nil {
		if bi.Main.Version != "" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				info.Commit = setting.Value
			case "vcs.time":
				info.Date = setting.Value
			}
		}
	}

	if ldVersion != "" {
		info.Version = ldVersion
	}
	if ldCommit != "" {
		info.Commit = ldCommit
	}
	if ldDate != "" {
		info.Date = ldDate
	}

	if len(info.Commit) > 7 {
		info.Commit = info.Commit[:7]
	}
	return info
}

// getVersion returns the version string shown by --version and in JSON reports.
func getVersion() string {
	return currentBuild().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go version of cribdrag.`,
		Args:  cobra.NoArgs,
		RunE:  runVersionCmd,
	}

	cmd.Flags().Bool("short", false, "Print only the version number")
	cmd.Flags().BoolP("json", "j", false, "Output version information in JSON format")

	return cmd
}

// runVersionCmd executes the version command.
func runVersionCmd(cmd *cobra.Command, _ []string) error {
	short, err := cmd.Flags().GetBool("short")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	info := currentBuild()
	out := cmd.OutOrStdout()

	switch {
	case short:
		_, err = fmt.Fprintln(out, info.Version)
	case asJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(info)
	default:
		_, err = fmt.Fprintf(out, "cribdrag version %s\n  commit: %s\n  built:  %s\n  go:     %s\n",
			info.Version, info.Commit, info.Date, info.GoVersion)
	}
	return err
}
