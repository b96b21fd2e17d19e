//go:build windows

package d3d11

import (
	"strings"

	"golang.org/x/sys/windows"
)

// hresultMessage asks the system message table for the text of hr.
func hresultMessage(hr HRESULT) string {
	return strings.TrimSpace(windows.Errno(uint32(hr)).Error())
}
