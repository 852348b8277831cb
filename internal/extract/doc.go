// Package extract converts raw OCR text from identity documents into a fixed
// set of fields.
//
// Parse runs five independent passes over the text, one per field:
//
//   - DateOfBirth: the first date-shaped token, scanning line by line
//   - Gender: the first line mentioning female, male or transgender
//   - IDNumber: a 12-digit grouped national ID, else a PAN-style tax ID
//   - Name: the first line of capitalized words that is not layout noise
//   - Address: up to three lines following an "address" label
//
// The passes share no state. A pass that finds nothing leaves its field
// empty; that is the normal outcome for low-quality scans, not an error.
//
// The heuristics are layout-agnostic on purpose: they never rely on where
// a line sits on the card, only on what it contains and what precedes it.
package extract
