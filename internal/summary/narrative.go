package summary

import (
	"fmt"

	"github.com/ppiankov/noisepop/internal/model"
)

const narrativeTemplate = "The dataset has %d columns and %d rows. " +
	"The most populated agglomeration is %s with a population of %d, of whom %d (%s) are exposed to Lden >= 75dB noise from industry, railways and roads. " +
	"The least populated agglomeration is %s with a population of %d, of whom %d (%s) are exposed to Lden >= 75dB noise from industry, railways and roads."

// Narrative renders s as the fixed descriptive sentence, most populated first
func Narrative(s model.Summary) string {
	most, least := s.MostPopulated, s.LeastPopulated
	return fmt.Sprintf(narrativeTemplate,
		s.Columns, s.Rows,
		most.Location, most.Population, most.Exposure, FormatPercent(most.Percentage),
		least.Location, least.Population, least.Exposure, FormatPercent(least.Percentage),
	)
}
