package model

// PeriodLayout is the layout of a SAWIS return period.
const PeriodLayout = "2006-01"

type SawisStatus string

const (
	SawisStatusDraft     SawisStatus = "draft"
	SawisStatusSubmitted SawisStatus = "submitted"
)

// SawisEntry is the stock movement of one wine category in litres.
type SawisEntry struct {
	Category    string  `firestore:"category" json:"category"`
	Opening     float64 `firestore:"opening" json:"opening"`
	Production  float64 `firestore:"production" json:"production"`
	Purchases   float64 `firestore:"purchases" json:"purchases"`
	SalesLocal  float64 `firestore:"salesLocal" json:"salesLocal"`
	SalesExport float64 `firestore:"salesExport" json:"salesExport"`
	Losses      float64 `firestore:"losses" json:"losses"`
	Closing     float64 `firestore:"closing" json:"closing"`
}

type SawisReturn struct {
	Meta
	ProducerId  string       `firestore:"producerId" json:"producerId"`
	Period      string       `firestore:"period" json:"period"`
	Status      SawisStatus  `firestore:"status" json:"status"`
	Entries     []SawisEntry `firestore:"entries" json:"entries"`
	SubmittedBy string       `firestore:"submittedBy,omitempty" json:"submittedBy,omitempty"`
}
