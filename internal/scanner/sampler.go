package scanner

import "github.com/K0NGR3SS/colrisk/internal/table"

// DefaultSampleSize is the number of example values kept per column.
const DefaultSampleSize = 3

// Sample returns up to k distinct non-null values in first-seen order.
func Sample(values []table.Cell, k int) []string {
	if k <= 0 {
		return nil
	}

	out := make([]string, 0, k)
	seen := make(map[string]struct{}, k)
	for _, v := range values {
		if !v.Valid {
			continue
		}
		if _, dup := seen[v.Text]; dup {
			continue
		}
		seen[v.Text] = struct{}{}
		out = append(out, v.Text)
		if len(out) == k {
			break
		}
	}
	return out
}
