package main

// visibleRecords narrows the full record set to what the acting role
// may see. Admins get the whole sheet; officers only the rows they
// entered themselves. Store order is preserved and the input is never
// mutated.
func visibleRecords(all []PositionedReport, role, fullName string) []PositionedReport {
	if role == RoleAdmin {
		out := make([]PositionedReport, len(all))
		copy(out, all)
		return out
	}

	out := make([]PositionedReport, 0, len(all))
	for _, r := range all {
		if r.OfficerName == fullName {
			out = append(out, r)
		}
	}
	return out
}

// isLocked reports whether the acting role may not mutate the record.
// Admins are never locked out; officers may only touch rows entered
// today, so same-day transcription mistakes stay correctable while
// history does not. The comparison is plain string equality on the
// YYYY-MM-DD form: a missing or malformed input date can never equal a
// well-formed today, so such rows stay locked.
func isLocked(r Report, role, today string) bool {
	if role == RoleAdmin {
		return false
	}
	if r.InputDate == "" {
		return true
	}
	return r.InputDate != today
}
