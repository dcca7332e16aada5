package flow

// Stage is the current step of the checkout sequence.
type Stage string

const (
	StageCatalog      Stage = "CATALOG"
	StagePreview      Stage = "PREVIEW"
	StageBasket       Stage = "BASKET"
	StageDelivery     Stage = "DELIVERY"
	StageContacts     Stage = "CONTACTS"
	StageConfirmation Stage = "CONFIRMATION"
)

// String representation (for logging)
func (s Stage) String() string {
	return string(s)
}

var transitions = map[Stage][]Stage{
	StageCatalog:      {StagePreview, StageBasket},
	StagePreview:      {StagePreview, StageBasket, StageCatalog},
	StageBasket:       {StageBasket, StageDelivery, StageCatalog},
	StageDelivery:     {StageContacts, StageCatalog},
	StageContacts:     {StageConfirmation, StageCatalog},
	StageConfirmation: {StageCatalog},
}

// CanTransition reports whether the checkout sequence allows moving
// from one stage to another. Closing a modal always leads back to the
// catalog.
func CanTransition(from, to Stage) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
