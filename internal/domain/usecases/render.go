// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"fmt"
	"math"

	"portfoliochat/internal/domain/entities"
)

// documentTemplate is the fixed phrasing every portfolio row is rendered
// into. The wording is what the index is built from; changing it means
// rebuilding the index.
const documentTemplate = "Dit is een pand met ID-nummer %d. " +
	"Het adres is %s. " +
	"Het is een pand van het type '%s'. " +
	"De geschatte waarde is %s euro. " +
	"De leegstand is momenteel %d procent. " +
	"De jaarlijkse inkomsten zijn %s euro. " +
	"Het huidige huurcontract loopt af op %s."

// Render converts a portfolio record into its natural-language document.
// Pure and deterministic: the same record always yields the same text.
func Render(r entities.PortfolioRecord) entities.Document {
	return entities.Document{
		ID:       fmt.Sprintf("record-%d", r.ID),
		RecordID: r.ID,
		Content: fmt.Sprintf(documentTemplate,
			r.ID,
			r.Address,
			r.Type,
			r.Value,
			vacancyPercent(r.VacancyRate),
			r.AnnualIncome,
			r.EndLease,
		),
	}
}

// RenderAll renders one document per record, in input order.
func RenderAll(records []entities.PortfolioRecord) []entities.Document {
	docs := make([]entities.Document, len(records))
	for i, r := range records {
		docs[i] = Render(r)
	}
	return docs
}

// vacancyPercent converts a vacancy fraction to a whole-number percentage.
// Rounding is half-up: 0.125 becomes 13.
func vacancyPercent(rate float64) int {
	return int(math.Floor(rate*100 + 0.5))
}
