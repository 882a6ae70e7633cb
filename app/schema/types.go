package schema

// Canonical signal record types. The wire format (a JSON array produced by
// the scanning agent) uses snake_case field names; any field may be absent
// or carry an unexpected type, so nothing downstream of Normalize ever
// touches a raw map directly.

type Mission string

const (
	MissionASF Mission = "ASF"
	MissionAHL Mission = "AHL"
	MissionAFS Mission = "AFS"
)

const DefaultMission = MissionAHL

func (m Mission) Valid() bool {
	switch m {
	case MissionASF, MissionAHL, MissionAFS:
		return true
	}
	return false
}

// Missions lists all mission links in a fixed order.
func Missions() []Mission {
	return []Mission{MissionASF, MissionAHL, MissionAFS}
}

type Archetype string

const (
	ArchetypeShapeOfThings     Archetype = "shape_of_things"
	ArchetypeCounterIntuitive  Archetype = "counter_intuitive"
	ArchetypeCanary            Archetype = "canary"
	ArchetypeInsightsFromField Archetype = "insights_from_field"
	ArchetypeOutlier           Archetype = "outlier"
	ArchetypeBigIdea           Archetype = "big_idea"
)

const DefaultArchetype = ArchetypeShapeOfThings

func (a Archetype) Valid() bool {
	switch a {
	case ArchetypeShapeOfThings, ArchetypeCounterIntuitive, ArchetypeCanary,
		ArchetypeInsightsFromField, ArchetypeOutlier, ArchetypeBigIdea:
		return true
	}
	return false
}

// Archetypes lists all archetypes in a fixed order.
func Archetypes() []Archetype {
	return []Archetype{
		ArchetypeShapeOfThings,
		ArchetypeCounterIntuitive,
		ArchetypeCanary,
		ArchetypeInsightsFromField,
		ArchetypeOutlier,
		ArchetypeBigIdea,
	}
}

type Focus string

const (
	FocusSocial Focus = "social"
	FocusTech   Focus = "tech"
	FocusBoth   Focus = "both"
)

const DefaultFocus = FocusSocial

func (f Focus) Valid() bool {
	switch f {
	case FocusSocial, FocusTech, FocusBoth:
		return true
	}
	return false
}

type Brand string

const (
	BrandMedia Brand = "media"
	BrandPH    Brand = "PH"
	BrandBoth  Brand = "both"
)

const DefaultBrand = BrandMedia

func (b Brand) Valid() bool {
	switch b {
	case BrandMedia, BrandPH, BrandBoth:
		return true
	}
	return false
}

// RawRecord is one untyped wire record as decoded from the feed JSON.
type RawRecord map[string]interface{}

// Record is a fully normalized signal. Every field is present and
// type-correct after Normalize; consumers treat it as immutable.
type Record struct {
	Date              string    `json:"date"`
	Signal            string    `json:"signal"`
	SourceTitle       string    `json:"source_title"`
	SourceURL         string    `json:"source_url"`
	MissionLink       Mission   `json:"mission_links"`
	Archetype         Archetype `json:"archetype"`
	BriefSummary      string    `json:"brief_summary"`
	EquityConsequence string    `json:"equity_consequence"`
	Focus             Focus     `json:"focus"`
	Brand             Brand     `json:"brand"`
	Credibility       float64   `json:"credibility"`
	Relevance         float64   `json:"relevance"`
	Novelty           float64   `json:"novelty"`
	ArchetypeFit      float64   `json:"archetype_fit"`
	ScoreRecency      float64   `json:"score_recency"`
	TotalScore        float64   `json:"total_score"`
	Tags              []string  `json:"tags"`
	MissionTags       []string  `json:"mission_tags"`
	CategoryTags      []string  `json:"category_tags"`
}
