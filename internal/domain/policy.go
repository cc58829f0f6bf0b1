package domain

// Policy status labels shown by the front-end.
const (
	PolicyOpen       = "접수중"
	PolicyClosing    = "마감임박"
	PolicyClosed     = "마감"
	PolicyAlwaysOpen = "상시접수"
	PolicyUpcoming   = "접수예정"
)

// Policy is one subsidy programme listing.
type Policy struct {
	ID          string `json:"id" yaml:"id"`
	Region      string `json:"region" yaml:"region"`
	Title       string `json:"title" yaml:"title"`
	Amount      string `json:"amount" yaml:"amount"`
	Status      string `json:"status" yaml:"status"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
}

// PolicyList is the policy-data.json artifact.
type PolicyList struct {
	Policies []Policy `json:"policies"`
}
