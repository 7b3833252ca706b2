package record

import "sort"

// Store is the session's running record set. It is owned by a single
// controller and is not safe for concurrent use.
type Store struct {
	amountColumn string
	headers      []string
	records      []Record
	byIndex      map[int]int // Record.Index → position in records
}

// ImportResult describes one merged batch.
type ImportResult struct {
	Records []Record // normalised copies, in source order

	// HeaderMismatch is set when the batch's headers differ (ignoring case)
	// from the established header set. The batch is still merged.
	HeaderMismatch bool

	// NoData is set when the batch had zero records and contributed nothing.
	NoData bool

	// Established is set when this batch's headers became the header set.
	Established bool
}

// NewStore returns an empty store that normalises amountColumn on import.
func NewStore(amountColumn string) *Store {
	return &Store{
		amountColumn: amountColumn,
		byIndex:      make(map[int]int),
	}
}

// AmountColumn returns the designated amount column name.
func (s *Store) AmountColumn() string { return s.amountColumn }

// Headers returns a copy of the established header set (nil before the first
// non-empty import).
func (s *Store) Headers() []string {
	if s.headers == nil {
		return nil
	}
	return append([]string(nil), s.headers...)
}

// Len returns the number of records ever imported.
func (s *Store) Len() int { return len(s.records) }

// Records returns the records in import order. The slice is a copy; the
// Fields maps are shared and must not be modified.
func (s *Store) Records() []Record {
	return append([]Record(nil), s.records...)
}

// Lookup returns the record with the given identity.
func (s *Store) Lookup(index int) (Record, bool) {
	pos, ok := s.byIndex[index]
	if !ok {
		return Record{}, false
	}
	return s.records[pos], true
}

// ImportBatch normalises rows and appends them with fresh identities starting
// at the current record count. headers is the batch's column list.
func (s *Store) ImportBatch(rows []map[string]string, headers []string) ImportResult {
	if len(rows) == 0 {
		return ImportResult{NoData: true}
	}

	var res ImportResult
	switch {
	case len(s.headers) == 0 && len(headers) > 0:
		s.headers = append([]string(nil), headers...)
		res.Established = true
	case len(s.headers) > 0 && len(headers) > 0:
		res.HeaderMismatch = !SameHeaders(s.headers, headers)
	}

	next := len(s.records)
	res.Records = make([]Record, 0, len(rows))
	for i, row := range rows {
		rec := s.normalize(row, headers)
		rec.Index = next + i
		s.byIndex[rec.Index] = len(s.records)
		s.records = append(s.records, rec)
		res.Records = append(res.Records, rec)
	}
	return res
}

// normalize copies row and rewrites the amount cell as a positive magnitude.
func (s *Store) normalize(row map[string]string, headers []string) Record {
	rec := Record{
		Columns: columnsFor(row, headers),
		Fields:  make(map[string]string, len(row)),
	}
	for k, v := range row {
		rec.Fields[k] = v
	}
	if s.amountColumn == "" {
		return rec
	}
	if key, ok := rec.key(s.amountColumn); ok {
		if v, ok := NormalizeAmount(rec.Fields[key]); ok {
			rec.Fields[key] = v
		}
	}
	return rec
}

// columnsFor lists the row's keys in header order, followed by any keys the
// headers do not mention.
func columnsFor(row map[string]string, headers []string) []string {
	cols := make([]string, 0, len(row))
	seen := make(map[string]bool, len(row))
	for _, h := range headers {
		if _, ok := row[h]; ok && !seen[h] {
			cols = append(cols, h)
			seen[h] = true
		}
	}
	if len(cols) == len(row) {
		return cols
	}
	extra := make([]string, 0, len(row)-len(cols))
	for k := range row {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(cols, extra...)
}
