package extract

// Parse extracts every field from raw OCR text. It is a pure function of
// its input; each field is produced by its own pass and a miss in one pass
// never affects another.
func Parse(text string) FieldRecord {
	lines := Lines(text)
	return FieldRecord{
		Name:     Name(lines),
		DOB:      DateOfBirth(lines),
		Gender:   Gender(lines),
		Address:  Address(lines),
		IDNumber: IDNumber(Sanitize(text)),
	}
}
