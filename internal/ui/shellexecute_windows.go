//go:build windows

package ui

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const swShowNormal = 1

// ShellExecute performs verb on file through the Windows shell.
func ShellExecute(hwnd windows.Handle, verb, file, params, dir string, showCmd int32) error {
	lpVerb, err := windows.UTF16PtrFromString(verb)
	if err != nil {
		return fmt.Errorf("failed to convert verb to UTF16Ptr: %w", err)
	}
	lpFile, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return fmt.Errorf("failed to convert file path to UTF16Ptr: %w", err)
	}
	var lpParams, lpDir *uint16
	if params != "" {
		if lpParams, err = windows.UTF16PtrFromString(params); err != nil {
			return fmt.Errorf("failed to convert params to UTF16Ptr: %w", err)
		}
	}
	if dir != "" {
		if lpDir, err = windows.UTF16PtrFromString(dir); err != nil {
			return fmt.Errorf("failed to convert dir to UTF16Ptr: %w", err)
		}
	}

	if err := windows.ShellExecute(hwnd, lpVerb, lpFile, lpParams, lpDir, showCmd); err != nil {
		return fmt.Errorf("ShellExecuteW '%s' %s: %w", verb, file, err)
	}
	return nil
}
