// Package form renders extracted fields for people to use: a pre-filled
// application form as PDF, and a batch of extractions as an XLSX sheet.
package form
