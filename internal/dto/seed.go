package dto

// SeedFile is the layout of the seed data file
type SeedFile struct {
	Categories []SeedCategory `json:"categories"`
	Questions  []SeedQuestion `json:"questions"`
}

// SeedCategory is a category with a fixed id
type SeedCategory struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// SeedQuestion is a starter question
type SeedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// SeedResult reports what a seed run wrote
type SeedResult struct {
	Categories       int
	Questions        int
	QuestionsSkipped bool
}
