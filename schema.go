package tickscan

import (
	"errors"
	"sort"

	"github.com/hupe1980/tickscan/scan"
)

// role identifies what a resolved column feeds during aggregation.
type role int

const (
	roleSource role = iota
	roleProduct
	roleSide
	roleOrd
	roleWrk
	roleExc
)

type planStep struct {
	col  int
	role role
}

// extractPlan is the per-scan column schedule: the required columns in
// ascending index order, honoring the cursor's forward-only discipline
// regardless of how the file arranges them. When the source column is
// the lowest required one, a non-matching record costs a single field.
type extractPlan struct {
	steps []planStep
}

// readHeader consumes the header record and returns its column names.
func readHeader(c scan.Cursor) ([]string, error) {
	ok, err := c.Next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmptyInput
	}

	var names []string
	for col := 0; ; col++ {
		name, err := c.Text(col)
		if err != nil {
			var missing *scan.ErrMissingField
			if errors.As(err, &missing) {
				return names, nil
			}
			return nil, err
		}
		names = append(names, name)
	}
}

// buildPlan resolves required column names against the header.
func buildPlan(headers []string, names ColumnNames) (extractPlan, error) {
	required := []struct {
		name string
		role role
	}{
		{names.Source, roleSource},
		{names.Product, roleProduct},
		{names.Side, roleSide},
		{names.OrdQty, roleOrd},
		{names.WrkQty, roleWrk},
		{names.ExcQty, roleExc},
	}

	var p extractPlan
	for _, req := range required {
		col := -1
		for i, h := range headers {
			if h == req.name {
				col = i
				break
			}
		}
		if col < 0 {
			return extractPlan{}, &ErrMissingColumn{Name: req.name}
		}
		p.steps = append(p.steps, planStep{col: col, role: req.role})
	}

	sort.Slice(p.steps, func(i, j int) bool { return p.steps[i].col < p.steps[j].col })
	return p, nil
}
