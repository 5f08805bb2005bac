package config

import (
	"fmt"
	"strings"
)

// DialogBackend selects how file paths are picked
type DialogBackend string

const (
	DialogTerminal DialogBackend = "terminal"
	DialogNative   DialogBackend = "native"
)

// DialogBackendInfo describes a dialog backend option
type DialogBackendInfo struct {
	ID          DialogBackend
	Name        string
	Description string
}

// AvailableDialogBackends returns all dialog backends
func AvailableDialogBackends() []DialogBackendInfo {
	return []DialogBackendInfo{
		{
			ID:          DialogTerminal,
			Name:        "Terminal",
			Description: "File browser drawn inside the editor",
		},
		{
			ID:          DialogNative,
			Name:        "Native",
			Description: "Operating system file dialogs (needs a desktop session)",
		},
	}
}

// LookupDialogBackend finds a backend by ID
func LookupDialogBackend(id DialogBackend) (DialogBackendInfo, bool) {
	for _, b := range AvailableDialogBackends() {
		if b.ID == id {
			return b, true
		}
	}
	return DialogBackendInfo{}, false
}

func dialogBackendNames() string {
	var names []string
	for _, b := range AvailableDialogBackends() {
		names = append(names, string(b.ID))
	}
	return strings.Join(names, ", ")
}

// DialogBackendUsage lists the backends for command line help, one per line
func DialogBackendUsage() string {
	var lines []string
	for _, b := range AvailableDialogBackends() {
		lines = append(lines, fmt.Sprintf("  %-8s  %s: %s", b.ID, b.Name, b.Description))
	}
	return strings.Join(lines, "\n")
}
