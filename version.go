package main

import (
	"runtime/debug"
	"strings"
)

// Overridden at release time via -ldflags "-X main.buildVersion=...".
var (
	buildVersion = "dev"
	buildCommit  = ""
)

// versionString is what --version prints: the release version when one was
// stamped in, otherwise a dev label tagged with the commit from ldflags or,
// failing that, the VCS revision the toolchain embedded in the binary.
func versionString() string {
	commit := buildCommit
	if c := strings.TrimSpace(commit); c == "" || c == "unknown" {
		commit = vcsRevision()
	}
	return resolveVersion(buildVersion, commit)
}

func resolveVersion(version, commit string) string {
	v := strings.TrimSpace(version)
	if v != "" && v != "dev" {
		return v
	}
	c := strings.TrimSpace(commit)
	if c == "unknown" {
		c = ""
	}
	if len(c) > 7 {
		c = c[:7]
	}
	if c == "" {
		return "dev"
	}
	return "dev-" + c
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
