package extract

// Field keys as they appear in FieldRecord.Map and in JSON.
const (
	KeyName     = "name"
	KeyDOB      = "dob"
	KeyGender   = "gender"
	KeyAddress  = "address"
	KeyIDNumber = "id_number"
)

// Keys lists every field key in display order.
var Keys = []string{KeyName, KeyDOB, KeyGender, KeyAddress, KeyIDNumber}

// FieldRecord holds the fields extracted from one document. An empty value
// means the field was not found.
type FieldRecord struct {
	Name     string `json:"name"`
	DOB      string `json:"dob"`
	Gender   string `json:"gender"`
	Address  string `json:"address"`
	IDNumber string `json:"id_number"`
}

// Map returns the record as a new map that always holds exactly the five
// field keys.
func (r FieldRecord) Map() map[string]string {
	return map[string]string{
		KeyName:     r.Name,
		KeyDOB:      r.DOB,
		KeyGender:   r.Gender,
		KeyAddress:  r.Address,
		KeyIDNumber: r.IDNumber,
	}
}

// RecordFromMap builds a record from loosely keyed values, such as an edited
// form. Missing keys become empty fields; unknown keys are ignored.
func RecordFromMap(m map[string]string) FieldRecord {
	return FieldRecord{
		Name:     m[KeyName],
		DOB:      m[KeyDOB],
		Gender:   m[KeyGender],
		Address:  m[KeyAddress],
		IDNumber: m[KeyIDNumber],
	}
}
