package config

// Settings is everything a config file may set. A nil field was not present in
// the file and leaves the flag default in place.
type Settings struct {
	Length       *int
	MinBlock     *int
	MutationRate *float64
	SpaceProb    *float64
	// Sleep is the frame delay in seconds.
	Sleep    *float64
	Dict     *string
	Seed     *uint64
	Strategy *string
	Color    *string

	LogLevel  *string
	LogFormat *string

	MetricsPort *int

	PublishURL       *string
	PublishEvent     *string
	PublishNamespace *string
}
