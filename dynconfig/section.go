package dynconfig

import "github.com/alex05447/miniconfig/value"

// GetTable returns the nested table stored at key, or value.ErrWrongType
// if key holds a non-table value. Used by the INI parser to descend
// into already-declared parent sections (spec.md §4.4, "Nested
// sections").
func (t *Table) GetTable(key string) (*Table, error) {
	v, err := t.Get(key)
	if err != nil {
		return nil, err
	}
	if v.Kind() != value.Table {
		return nil, value.WrongType(value.Table, v.Kind())
	}
	reader, _ := v.Table()
	nested, ok := reader.(*Table)
	if !ok {
		return nil, value.WrongType(value.Table, v.Kind())
	}
	return nested, nil
}

// SetTable inserts a nested table at key, replacing any existing value.
func (t *Table) SetTable(key string, nested *Table) error {
	return t.Set(key, value.NewTable(nested))
}

// GetOrCreateTable returns the table at key, creating and inserting an
// empty one if key is absent. It returns value.ErrWrongType if key
// already holds a non-table value.
func (t *Table) GetOrCreateTable(key string) (*Table, error) {
	if t.Contains(key) {
		return t.GetTable(key)
	}
	nested := NewTable()
	if err := t.SetTable(key, nested); err != nil {
		return nil, err
	}
	return nested, nil
}
