package contacts

// RecordSnapshot is the plain-data form of a Record used for persistence.
// Phones are in insertion order; Birthday is DD.MM.YYYY or empty.
type RecordSnapshot struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones" yaml:"phones"`
	Birthday string   `json:"birthday,omitempty" yaml:"birthday,omitempty"`
}

// Snapshot returns the record as plain data.
func (r *Record) Snapshot() RecordSnapshot {
	s := RecordSnapshot{
		Name:   r.name.Value(),
		Phones: make([]string, len(r.phones)),
	}
	for i, p := range r.phones {
		s.Phones[i] = p.Value()
	}
	if r.birthday != nil {
		s.Birthday = r.birthday.String()
	}
	return s
}

// RestoreRecord rebuilds a record from a snapshot, validating every field.
func RestoreRecord(s RecordSnapshot) (*Record, error) {
	r, err := NewRecord(s.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range s.Phones {
		if err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if s.Birthday != "" {
		if err := r.AddBirthday(s.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Snapshot returns every record as plain data, in insertion order.
func (b *AddressBook) Snapshot() []RecordSnapshot {
	out := make([]RecordSnapshot, 0, len(b.order))
	for _, r := range b.Records() {
		out = append(out, r.Snapshot())
	}
	return out
}

// Restore builds a book from snapshots, keeping their order.
func Restore(snapshots []RecordSnapshot) (*AddressBook, error) {
	b := NewAddressBook()
	for _, s := range snapshots {
		r, err := RestoreRecord(s)
		if err != nil {
			return nil, err
		}
		if err := b.AddRecord(r); err != nil {
			return nil, err
		}
	}
	return b, nil
}
