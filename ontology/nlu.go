package ontology

import "fmt"

// NluIntentClassifierResult is the intent picked by the classifier.
type NluIntentClassifierResult struct {
	IntentName      string  `yaml:"intent_name"`
	ConfidenceScore float32 `yaml:"confidence_score"`
}

// NluSlot is one filled slot of an intent.
type NluSlot struct {
	RawValue        string    `yaml:"raw_value"`
	Value           SlotValue `yaml:"-"`
	RangeStart      int       `yaml:"range_start"`
	RangeEnd        int       `yaml:"range_end"`
	Entity          string    `yaml:"entity"`
	SlotName        string    `yaml:"slot_name"`
	ConfidenceScore *float32  `yaml:"confidence_score,omitempty"`
}

// SlotValueKind tags the shape of a slot value. Numbering starts at 1.
type SlotValueKind uint32

const (
	SlotCustom SlotValueKind = iota + 1
	SlotNumber
	SlotOrdinal
	SlotInstantTime
	SlotTimeInterval
	SlotAmountOfMoney
	SlotTemperature
	SlotDuration
	SlotPercentage
	SlotMusicAlbum
	SlotMusicArtist
	SlotMusicTrack
	SlotCity
	SlotCountry
	SlotRegion
)

// SlotValueKindCount is the highest valid SlotValueKind.
const SlotValueKindCount = SlotRegion

var slotValueKindNames = [...]string{
	SlotCustom:        "custom",
	SlotNumber:        "number",
	SlotOrdinal:       "ordinal",
	SlotInstantTime:   "instant_time",
	SlotTimeInterval:  "time_interval",
	SlotAmountOfMoney: "amount_of_money",
	SlotTemperature:   "temperature",
	SlotDuration:      "duration",
	SlotPercentage:    "percentage",
	SlotMusicAlbum:    "music_album",
	SlotMusicArtist:   "music_artist",
	SlotMusicTrack:    "music_track",
	SlotCity:          "city",
	SlotCountry:       "country",
	SlotRegion:        "region",
}

func (k SlotValueKind) String() string {
	if k >= 1 && k <= SlotValueKindCount {
		return slotValueKindNames[k]
	}
	return fmt.Sprintf("SlotValueKind(%d)", uint32(k))
}

// ParseSlotValueKind is the inverse of String.
func ParseSlotValueKind(s string) (SlotValueKind, bool) {
	for k := SlotCustom; k <= SlotValueKindCount; k++ {
		if slotValueKindNames[k] == s {
			return k, true
		}
	}
	return 0, false
}

// SlotValue is the resolved value of a slot.
type SlotValue interface {
	Kind() SlotValueKind
	isSlotValue()
}

type (
	CustomValue      string
	NumberValue      float64
	OrdinalValue     int64
	PercentageValue  float64
	MusicAlbumValue  string
	MusicArtistValue string
	MusicTrackValue  string
	CityValue        string
	CountryValue     string
	RegionValue      string
)

type InstantTimeValue struct {
	Value     string    `yaml:"value"`
	Grain     Grain     `yaml:"grain"`
	Precision Precision `yaml:"precision"`
}

type TimeIntervalValue struct {
	From *string `yaml:"from,omitempty"`
	To   *string `yaml:"to,omitempty"`
}

type AmountOfMoneyValue struct {
	Unit      *string   `yaml:"unit,omitempty"`
	Value     float32   `yaml:"value"`
	Precision Precision `yaml:"precision"`
}

type TemperatureValue struct {
	Unit  *string `yaml:"unit,omitempty"`
	Value float32 `yaml:"value"`
}

type DurationValue struct {
	Years     int64     `yaml:"years"`
	Quarters  int64     `yaml:"quarters"`
	Months    int64     `yaml:"months"`
	Weeks     int64     `yaml:"weeks"`
	Days      int64     `yaml:"days"`
	Hours     int64     `yaml:"hours"`
	Minutes   int64     `yaml:"minutes"`
	Seconds   int64     `yaml:"seconds"`
	Precision Precision `yaml:"precision"`
}

func (CustomValue) Kind() SlotValueKind        { return SlotCustom }
func (NumberValue) Kind() SlotValueKind        { return SlotNumber }
func (OrdinalValue) Kind() SlotValueKind       { return SlotOrdinal }
func (InstantTimeValue) Kind() SlotValueKind   { return SlotInstantTime }
func (TimeIntervalValue) Kind() SlotValueKind  { return SlotTimeInterval }
func (AmountOfMoneyValue) Kind() SlotValueKind { return SlotAmountOfMoney }
func (TemperatureValue) Kind() SlotValueKind   { return SlotTemperature }
func (DurationValue) Kind() SlotValueKind      { return SlotDuration }
func (PercentageValue) Kind() SlotValueKind    { return SlotPercentage }
func (MusicAlbumValue) Kind() SlotValueKind    { return SlotMusicAlbum }
func (MusicArtistValue) Kind() SlotValueKind   { return SlotMusicArtist }
func (MusicTrackValue) Kind() SlotValueKind    { return SlotMusicTrack }
func (CityValue) Kind() SlotValueKind          { return SlotCity }
func (CountryValue) Kind() SlotValueKind       { return SlotCountry }
func (RegionValue) Kind() SlotValueKind        { return SlotRegion }

func (CustomValue) isSlotValue()        {}
func (NumberValue) isSlotValue()        {}
func (OrdinalValue) isSlotValue()       {}
func (InstantTimeValue) isSlotValue()   {}
func (TimeIntervalValue) isSlotValue()  {}
func (AmountOfMoneyValue) isSlotValue() {}
func (TemperatureValue) isSlotValue()   {}
func (DurationValue) isSlotValue()      {}
func (PercentageValue) isSlotValue()    {}
func (MusicAlbumValue) isSlotValue()    {}
func (MusicArtistValue) isSlotValue()   {}
func (MusicTrackValue) isSlotValue()    {}
func (CityValue) isSlotValue()          {}
func (CountryValue) isSlotValue()       {}
func (RegionValue) isSlotValue()        {}

// TextSlotValue builds the text-shaped variant of kind. It reports false
// for kinds that do not hold plain text.
func TextSlotValue(kind SlotValueKind, s string) (SlotValue, bool) {
	switch kind {
	case SlotCustom:
		return CustomValue(s), true
	case SlotMusicAlbum:
		return MusicAlbumValue(s), true
	case SlotMusicArtist:
		return MusicArtistValue(s), true
	case SlotMusicTrack:
		return MusicTrackValue(s), true
	case SlotCity:
		return CityValue(s), true
	case SlotCountry:
		return CountryValue(s), true
	case SlotRegion:
		return RegionValue(s), true
	default:
		return nil, false
	}
}

// Grain is the resolution of a time value.
type Grain uint32

const (
	GrainYear Grain = iota + 1
	GrainQuarter
	GrainMonth
	GrainWeek
	GrainDay
	GrainHour
	GrainMinute
	GrainSecond
)

var grainNames = [...]string{
	GrainYear:    "year",
	GrainQuarter: "quarter",
	GrainMonth:   "month",
	GrainWeek:    "week",
	GrainDay:     "day",
	GrainHour:    "hour",
	GrainMinute:  "minute",
	GrainSecond:  "second",
}

func (g Grain) Valid() bool { return g >= GrainYear && g <= GrainSecond }

func (g Grain) String() string {
	if g.Valid() {
		return grainNames[g]
	}
	return fmt.Sprintf("Grain(%d)", uint32(g))
}

func (g Grain) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("invalid grain %d", uint32(g))
	}
	return []byte(g.String()), nil
}

func (g *Grain) UnmarshalText(b []byte) error {
	for v := GrainYear; v <= GrainSecond; v++ {
		if grainNames[v] == string(b) {
			*g = v
			return nil
		}
	}
	return fmt.Errorf("unknown grain %q", b)
}

// Precision tells whether a value was stated exactly.
type Precision uint32

const (
	PrecisionApproximate Precision = iota + 1
	PrecisionExact
)

func (p Precision) Valid() bool { return p == PrecisionApproximate || p == PrecisionExact }

func (p Precision) String() string {
	switch p {
	case PrecisionApproximate:
		return "approximate"
	case PrecisionExact:
		return "exact"
	default:
		return fmt.Sprintf("Precision(%d)", uint32(p))
	}
}

func (p Precision) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid precision %d", uint32(p))
	}
	return []byte(p.String()), nil
}

func (p *Precision) UnmarshalText(b []byte) error {
	switch string(b) {
	case "approximate":
		*p = PrecisionApproximate
	case "exact":
		*p = PrecisionExact
	default:
		return fmt.Errorf("unknown precision %q", b)
	}
	return nil
}
