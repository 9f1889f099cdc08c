package domain

import "time"

// InputSnapshot is the serialized form of everything a user has entered.
type InputSnapshot struct {
	ID        string                 `json:"id"`
	SavedAt   time.Time              `json:"savedAt"`
	Mortgage  *MortgageInputs        `json:"mortgage,omitempty"`
	Current   *CurrentPropertyInputs `json:"current,omitempty"`
	Candidate *NewPropertyInputs     `json:"candidate,omitempty"`
	Decision  *DecisionInputs        `json:"decision,omitempty"`
}
