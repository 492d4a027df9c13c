package bank

import (
	_ "embed"
	"fmt"
)

// sampleRaw is the built-in bank used on first run and after a reset.
//
//go:embed sample_bank.json
var sampleRaw []byte

// Sample returns the embedded sample bank. The payload ships with the
// binary, so a failure here is a build defect, not a runtime condition.
func Sample() *Bank {
	doc, err := ParseJSON(sampleRaw)
	if err != nil {
		panic(fmt.Sprintf("embedded sample bank is not valid JSON: %v", err))
	}
	b, err := Validate(doc)
	if err != nil {
		panic(fmt.Sprintf("embedded sample bank failed validation: %v", err))
	}
	return b
}
