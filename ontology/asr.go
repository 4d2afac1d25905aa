package ontology

// AsrDecodingDuration is the time span of a token in seconds.
type AsrDecodingDuration struct {
	Start float32 `yaml:"start"`
	End   float32 `yaml:"end"`
}

// AsrToken is one recognized word.
type AsrToken struct {
	Value      string              `yaml:"value"`
	Confidence float32             `yaml:"confidence"`
	RangeStart int                 `yaml:"range_start"`
	RangeEnd   int                 `yaml:"range_end"`
	Time       AsrDecodingDuration `yaml:"time"`
}
