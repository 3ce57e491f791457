package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSemVer(t *testing.T) {
	cases := []struct {
		in   string
		want SemVer
	}{
		{"1.2.3", SemVer{Major: 1, Minor: 2, Patch: 3}},
		{"1.2", SemVer{Major: 1, Minor: 2, Patch: 1}},
		{"1.2.3-beta", SemVer{Major: 1, Minor: 2, Patch: 3, Errata: "-beta"}},
		{"bad", SemVer{Major: 0, Minor: 0, Patch: 1, Errata: "bad"}},
		{"1.bad.3", SemVer{Major: 1, Minor: 0, Patch: 1, Errata: "bad"}},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, ParseSemVer(c.in), "ParseSemVer(%q)", c.in)
	}
}

func TestSemVer_String(t *testing.T) {
	assert.Equal(t, "1.2.3", ParseSemVer("1.2.3").String())
	assert.Equal(t, "0.0.1bad", ParseSemVer("bad").String())
}

func TestSemVer_Compare(t *testing.T) {
	assert.Equal(t, 0, ParseSemVer("1.2.3").Compare(ParseSemVer("1.2.3")))
	assert.Equal(t, -1, ParseSemVer("1.2.3").Compare(ParseSemVer("1.3.0")))
	assert.Equal(t, 1, ParseSemVer("2.0.0").Compare(ParseSemVer("1.9.9")))
	assert.Equal(t, -1, ParseSemVer("1.2.3-alpha").Compare(ParseSemVer("1.2.3-beta")))
}
