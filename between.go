package awkish

// rangeMatcher produces a single condition signal from an on/off pair,
// remembering whether it is inside a range across records. The state is
// created at registration time and is deliberately not reset between
// runs: awk range semantics persist across files within one invocation.
type rangeMatcher struct {
	on     Condition
	off    Condition
	inside bool
}

// eval advances the matcher by one record.
//
// Outside a range only the on condition is checked; the line that opens
// the range is included and its condition value returned. Inside, only
// the off condition is checked; the closing line is included with its
// value, interior lines yield true. Because off is never checked on the
// opening line, a range can never open and close on the same record.
func (m *rangeMatcher) eval(r *Record) (any, error) {
	if !m.inside {
		v, err := m.on(r)
		if err != nil {
			return nil, err
		}
		if truthy(v) {
			m.inside = true
			return v, nil
		}
		return v, nil
	}
	v, err := m.off(r)
	if err != nil {
		return nil, err
	}
	if truthy(v) {
		m.inside = false
		return v, nil
	}
	return true, nil
}
