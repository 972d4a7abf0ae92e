package experiment

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/rankeval/internal/apperr"
)

const deviceWant = "either csv string, int or list of ints"

// Devices is an ordered list of accelerator ids. The host activates Primary.
type Devices []int

func (d Devices) Primary() (int, bool) {
	if len(d) == 0 {
		return 0, false
	}
	return d[0], true
}

// SelectDevices normalises a device selector taken from flags, YAML or JSON.
// It accepts a comma-separated string ("0,1"), an int, or a list of ints.
// A nil selector selects nothing.
func SelectDevices(v any) (Devices, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return parseDeviceCSV(x)
	case int:
		return Devices{x}, nil
	case int64:
		return Devices{int(x)}, nil
	case []int:
		if len(x) == 0 {
			return nil, apperr.NewValidation("device list is empty")
		}
		return append(Devices(nil), x...), nil
	case []any:
		if len(x) == 0 {
			return nil, apperr.NewValidation("device list is empty")
		}
		devices := make(Devices, 0, len(x))
		for _, e := range x {
			id, ok := e.(int)
			if !ok {
				return nil, apperr.NewInvalidConfigType("gpu", v, deviceWant)
			}
			devices = append(devices, id)
		}
		return devices, nil
	default:
		return nil, apperr.NewInvalidConfigType("gpu", v, deviceWant)
	}
}

func parseDeviceCSV(s string) (Devices, error) {
	parts := strings.Split(s, ",")
	devices := make(Devices, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, apperr.NewValidationWrap(fmt.Sprintf("invalid device id %q", p), err)
		}
		devices = append(devices, id)
	}
	return devices, nil
}
