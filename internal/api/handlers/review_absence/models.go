package review_absence

// ReviewAbsenceRequest HTTP request model
type ReviewAbsenceRequest struct {
	Decision string `json:"decision"` // APPROVED или REJECTED
}
