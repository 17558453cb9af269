package des

import "fmt"

// SaturatedSystem is returned by an engine's Run when the number of
// concurrent customers exceeds its configured safety cap — the resource
// exhaustion case of spec §7, guarding against unbounded heap growth under
// pathological rho > 1 settings.
type SaturatedSystem struct {
	Cap     int
	AtState int
}

func (e *SaturatedSystem) Error() string {
	return fmt.Sprintf("system saturated: state %d exceeded max concurrent customers %d", e.AtState, e.Cap)
}
