//go:build windows
// +build windows

// pkg/sysinfo/sysinfo_windows.go - WMI facts and elevation state.

package sysinfo

import (
	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"

	"github.com/macrodata/wheelhouse/pkg/logging"
)

// WMI structure for querying system information
type Win32_ComputerSystem struct {
	Model        string `wmi:"Model"`
	Manufacturer string `wmi:"Manufacturer"`
}

// fillMachineFacts queries WMI for the machine model and manufacturer.
func fillMachineFacts(facts *Facts) {
	var systems []Win32_ComputerSystem

	err := wmi.Query("SELECT Model, Manufacturer FROM Win32_ComputerSystem", &systems)
	if err != nil {
		logging.Debug("WMI query for computer system failed", "error", err)
		return
	}
	if len(systems) > 0 {
		facts.Model = systems[0].Model
		facts.Manufacturer = systems[0].Manufacturer
	}
}

// isElevated reports whether the current token is a member of the local
// Administrators group. The installer does not require elevation; the
// fact is logged so failed system-wide pip installs are explainable.
func isElevated() bool {
	var sid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	token := windows.Token(0)
	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}
