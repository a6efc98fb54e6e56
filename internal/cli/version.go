package cli

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const defaultModulePath = "github.com/ambrogio-dev/ambrogio"

// Release builds inject these with
// -ldflags "-X github.com/ambrogio-dev/ambrogio/internal/cli.buildVersion=...".
var (
	buildVersion = ""
	buildCommit  = ""
	buildDate    = ""
)

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show Ambrogio version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		printf("ambrogio %s\n", info.Version)
		printf("module: %s\n", info.ModulePath)
		if info.Commit != "" {
			printf("commit: %s\n", info.Commit)
		}
		if info.CommitTime != "" {
			printf("commit_time: %s\n", info.CommitTime)
		}
		printf("go: %s\n", info.GoVersion)
		printf("platform: %s/%s\n", info.GOOS, info.GOARCH)
		printf("modified: %t\n", info.Modified)
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if v := settings["GOOS"]; v != "" {
			info.GOOS = v
		}
		if v := settings["GOARCH"]; v != "" {
			info.GOARCH = v
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	// ldflags fill what the build info lacks.
	if info.Version == "devel" && buildVersion != "" {
		info.Version = normalizeVersion(buildVersion)
	}
	if info.Commit == "" {
		info.Commit = buildCommit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildDate
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
