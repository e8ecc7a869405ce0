package fontinfo

// Filter returns the records satisfying all constraints of c, in canonical
// order. With empty criteria, Filter returns a sorted copy of all records.
// The input slice is never modified.
func Filter(records []Record, c Criteria) []Record {
	preds := c.Predicates()
	out := make([]Record, 0, len(records))
next:
	for _, r := range records {
		for _, p := range preds {
			if !p.Match(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	tracer().Debugf("filter %s: %d of %d records match", c, len(out), len(records))
	Sort(out)
	return out
}
