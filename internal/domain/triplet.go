package domain

// Triplet is a training example: an anchor track, a tag-similar positive
// and a tag-dissimilar negative.
type Triplet struct {
	Anchor   string `json:"anchor"`
	Positive string `json:"positive"`
	Negative string `json:"negative"`
}

// TrainingPair is one side of a triplet labelled for pairwise training.
type TrainingPair struct {
	Left    string `json:"left"`
	Right   string `json:"right"`
	Similar bool   `json:"similar"`
}

// MatchPair is a manual similarity label between two tracks. Left sorts
// before or equal to Right.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	Match bool   `json:"match"`
}
