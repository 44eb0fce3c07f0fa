package floating

import "wavefloat/internal/core"

// Scenes maps registered scene names to their base configuration.
var Scenes = map[string]func() Config{
	"beachball": DefaultConfig,
	"regatta":   RegattaConfig,
}

func init() {
	for name, base := range Scenes {
		base := base
		core.Register(name, func(kv map[string]string) (core.Sim, error) {
			cfg, err := FromMap(base(), kv)
			if err != nil {
				return nil, err
			}
			w, err := New(cfg)
			if err != nil {
				return nil, err
			}
			return w, nil
		})
	}
}
