package d3d11

import "fmt"

// HRESULT is a COM status code. Values with the high bit set are errors.
type HRESULT int32

const (
	S_OK          HRESULT = 0
	E_OUTOFMEMORY HRESULT = -0x7ff8fff2 // 0x8007000E
	E_INVALIDARG  HRESULT = -0x7ff8ffa9 // 0x80070057
)

func (hr HRESULT) Failed() bool { return hr < 0 }

func (hr HRESULT) Error() string {
	if msg := hresultMessage(hr); msg != "" {
		return fmt.Sprintf("d3d11: %s (0x%08X)", msg, uint32(hr))
	}
	return fmt.Sprintf("d3d11: HRESULT 0x%08X", uint32(hr))
}

// Check turns a native call result into an error, nil on success.
func Check(hr HRESULT) error {
	if hr.Failed() {
		return hr
	}
	return nil
}
