package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/yungbote/diabetect-backend/internal/types"
)

// FeatureColumns is the canonical feature order. Every persisted model
// expects its inputs in exactly this order.
var FeatureColumns = []string{
	"Pregnancies",
	"Glucose",
	"BloodPressure",
	"SkinThickness",
	"Insulin",
	"BMI",
	"DiabetesPedigreeFunction",
	"Age",
}

const OutcomeColumn = "Outcome"

// Load parses the diabetes dataset from r. The header must contain every
// feature column plus the outcome column; a missing column is a
// configuration error, never silently dropped. Extra columns are ignored.
// Empty cells parse as NaN.
func Load(r io.Reader) ([]types.HealthRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range append(append([]string{}, FeatureColumns...), OutcomeColumn) {
		if _, ok := colIndex[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("dataset is missing required columns: %s", strings.Join(missing, ", "))
	}

	var records []types.HealthRecord
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", line, err)
		}

		features := make([]float64, len(FeatureColumns))
		for i, name := range FeatureColumns {
			features[i], err = parseCell(row[colIndex[name]])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", line, name, err)
			}
		}

		outcomeRaw, err := parseCell(row[colIndex[OutcomeColumn]])
		if err != nil {
			return nil, fmt.Errorf("row %d, column %s: %w", line, OutcomeColumn, err)
		}
		outcome := int(outcomeRaw)
		if math.IsNaN(outcomeRaw) || (outcome != 0 && outcome != 1) {
			return nil, fmt.Errorf("row %d: outcome must be 0 or 1, got %q", line, row[colIndex[OutcomeColumn]])
		}

		records = append(records, types.HealthRecord{
			Pregnancies:              features[0],
			Glucose:                  features[1],
			BloodPressure:            features[2],
			SkinThickness:            features[3],
			Insulin:                  features[4],
			BMI:                      features[5],
			DiabetesPedigreeFunction: features[6],
			Age:                      features[7],
			Outcome:                  outcome,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset contains no rows")
	}
	return records, nil
}

// LoadFile reads the dataset from path.
func LoadFile(path string) ([]types.HealthRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}
