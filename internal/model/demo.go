package model

import (
	"bytes"
	_ "embed"
)

//go:embed demo_bundle.json
var demoArtifact []byte

// DemoArtifact returns the bytes of the bundled demo model.
func DemoArtifact() []byte {
	out := make([]byte, len(demoArtifact))
	copy(out, demoArtifact)
	return out
}

// DemoBundle decodes the bundled demo model.
func DemoBundle() *Bundle {
	b, err := Decode(bytes.NewReader(demoArtifact))
	if err != nil {
		panic("model: embedded demo artifact is invalid: " + err.Error())
	}
	return b
}
