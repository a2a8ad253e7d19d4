package model

type Offender struct {
	Meta
	Name               string  `firestore:"name" json:"name"`
	CompanyName        string  `firestore:"companyName,omitempty" json:"companyName,omitempty"`
	RegistrationNumber string  `firestore:"registrationNumber,omitempty" json:"registrationNumber,omitempty"`
	Reason             string  `firestore:"reason" json:"reason"`
	AmountOwed         float64 `firestore:"amountOwed,omitempty" json:"amountOwed,omitempty"`
	ReportedBy         string  `firestore:"reportedBy" json:"reportedBy"`
}
