package sdk

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SupportState is the display state of a status query.
type SupportState string

const (
	StatePending      SupportState = "pending"
	StateSupported    SupportState = "supported"
	StateUnsupported  SupportState = "unsupported"
	StateNetworkError SupportState = "networkError"
)

// DeviceStatus is what the start screen knows about device support.
type DeviceStatus struct {
	State  SupportState
	Device string
	// Nearest is the closest supported model name when the device is unsupported.
	Nearest string
}

// VersionStatus is what the start screen knows about SDK version support.
type VersionStatus struct {
	State   SupportState
	Version string
	// Unverified is set when the query failed and the version was assumed supported.
	Unverified bool
	Supported  []string
}

// DeviceStatusFrom converts a query outcome into a display status.
func DeviceStatusFrom(ds DeviceSupport, err error) DeviceStatus {
	if err != nil {
		return DeviceStatus{State: StateNetworkError}
	}
	if ds.IsCurrentSupported {
		return DeviceStatus{State: StateSupported, Device: ds.CurrentDevice}
	}
	return DeviceStatus{
		State:   StateUnsupported,
		Device:  ds.CurrentDevice,
		Nearest: NearestDevice(ds.CurrentDevice, ds.SupportedDevices),
	}
}

// VersionStatusFrom converts a query outcome into a display status. A failed
// query is treated as supported and flagged Unverified.
func VersionStatusFrom(version string, vs VersionSupport, err error) VersionStatus {
	if err != nil {
		return VersionStatus{State: StateSupported, Version: version, Unverified: true}
	}
	st := StateSupported
	if !vs.IsCurrentVersionSupported {
		st = StateUnsupported
	}
	return VersionStatus{State: st, Version: version, Supported: vs.SupportedVersions}
}

// NearestDevice returns the supported model whose name is closest to current
// by edit distance, or "" when there is nothing to compare against.
func NearestDevice(current string, supported []string) string {
	cur := strings.ToLower(strings.TrimSpace(current))
	if cur == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, name := range supported {
		d := levenshtein.ComputeDistance(cur, strings.ToLower(name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func contains(list []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, s := range list {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return true
		}
	}
	return false
}
