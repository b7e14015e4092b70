package hcl

// fileRoot is the shape of a settings file. Every attribute and block is
// optional; unknown attributes are rejected by the decoder.
type fileRoot struct {
	Length       *int     `hcl:"length,optional"`
	MinBlock     *int     `hcl:"min_block,optional"`
	MutationRate *float64 `hcl:"mutation_rate,optional"`
	SpaceProb    *float64 `hcl:"space_prob,optional"`
	Sleep        *float64 `hcl:"sleep,optional"`
	Dict         *string  `hcl:"dict,optional"`
	Seed         *int64   `hcl:"seed,optional"`
	Strategy     *string  `hcl:"strategy,optional"`
	Color        *string  `hcl:"color,optional"`

	Log     *logBlock     `hcl:"log,block"`
	Metrics *metricsBlock `hcl:"metrics,block"`
	Publish *publishBlock `hcl:"publish,block"`
}

type logBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type metricsBlock struct {
	Port *int `hcl:"port,optional"`
}

type publishBlock struct {
	URL       string  `hcl:"url"`
	Event     *string `hcl:"event,optional"`
	Namespace *string `hcl:"namespace,optional"`
}
