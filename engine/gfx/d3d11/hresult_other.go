//go:build !windows

package d3d11

func hresultMessage(hr HRESULT) string {
	switch hr {
	case E_OUTOFMEMORY:
		return "out of memory"
	case E_INVALIDARG:
		return "invalid argument"
	}
	return ""
}
