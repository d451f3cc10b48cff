package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/drape/internal/config"
)

var ErrUnknownParam = errors.New("experiment: unknown parameter")

var params = map[string]func(c *config.Config, v float64){
	"total_mass": func(c *config.Config, v float64) { c.Cloth.TotalMass = v; c.Cloth.Variant = "" },
	"damping":    func(c *config.Config, v float64) { c.Cloth.Damping = v },
	"gravity":    func(c *config.Config, v float64) { c.Cloth.Gravity[1] = -v },
	"base_force": func(c *config.Config, v float64) { c.Wind.BaseForce = v },
	"offset":     func(c *config.Config, v float64) { c.Wind.Offset = v },
	"transition": func(c *config.Config, v float64) { c.Wind.Transition = v },
	"wind_x":     func(c *config.Config, v float64) { c.Wind.Direction[0] = v },
	"wind_y":     func(c *config.Config, v float64) { c.Wind.Direction[1] = v },
	"wind_z":     func(c *config.Config, v float64) { c.Wind.Direction[2] = v },
	"dt":         func(c *config.Config, v float64) { c.Sim.Dt = v },
	"duration":   func(c *config.Config, v float64) { c.Sim.Duration = v },
}

// SetParam writes a named scalar into cfg. Setting total_mass clears the
// variant so the explicit mass is used.
func SetParam(cfg *config.Config, name string, value float64) error {
	set, ok := params[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, ParamNames())
	}
	set(cfg, value)
	return nil
}

// ApplyParams sets every entry of ps on a copy of base.
func ApplyParams(base *config.Config, ps map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range ps {
		if err := SetParam(cfg, name, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func ParamNames() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
