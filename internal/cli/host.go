package cli

import (
	"math"

	"github.com/PixPMusic/pushmap/internal/config"
	"github.com/PixPMusic/pushmap/internal/host"
)

// registryFromConfig builds the in-memory host declared in the config.
func registryFromConfig(modules []config.ModuleConfig) *host.Registry {
	reg := host.NewRegistry()
	for _, mc := range modules {
		params := make([]host.Param, 0, len(mc.Params))
		for _, pc := range mc.Params {
			p := host.Param{ID: pc.ID, Name: pc.Name, Min: pc.Min, Max: pc.Max, Default: pc.Default}
			if pc.Unbounded {
				p.Min, p.Max = math.Inf(-1), math.Inf(1)
			}
			params = append(params, p)
		}
		reg.AddModule(host.NewModule(mc.ID, mc.Name, params...))
	}
	return reg
}
