package models

// CareerRecommendation is the read-only analytics payload behind the guide
// chart: average grade per category plus a recommended career label.
type CareerRecommendation struct {
	CategoryAverages  map[SubjectCategory]float64 `json:"category_averages"`
	RecommendedCareer string                      `json:"recommended_career"`
}
