package query

// FieldMap resolves a logical field name to its physical column name.
type FieldMap interface {
	Column(field string) string
}

// MapFields returns a FieldMap backed by a copy of columns. Lookups are exact and
// case-sensitive; unmapped fields resolve to themselves.
func MapFields(columns map[string]string) FieldMap {
	m := make(staticFieldMap, len(columns))
	for field, column := range columns {
		m[field] = column
	}
	return m
}

type staticFieldMap map[string]string

func (m staticFieldMap) Column(field string) string {
	if column, ok := m[field]; ok {
		return column
	}
	return field
}

// resolveColumn tolerates a nil FieldMap.
func resolveColumn(fields FieldMap, field string) string {
	if fields == nil {
		return field
	}
	return fields.Column(field)
}
