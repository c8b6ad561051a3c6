package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(map[string]bool{"buy milk": false, "walk dog": true})
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := Fingerprint(map[string]bool{"walk dog": true, "buy milk": false})
	require.NoError(t, err)
	assert.Equal(t, a, b, "map order must not matter")

	c, err := Fingerprint(map[string]bool{"buy milk": true, "walk dog": true})
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "status change must change fingerprint")
}

func TestFingerprintEmpty(t *testing.T) {
	nilFP, err := Fingerprint(nil)
	require.NoError(t, err)

	emptyFP, err := Fingerprint(map[string]bool{})
	require.NoError(t, err)

	assert.Equal(t, emptyFP, nilFP)
}

func TestFingerprintDomainSeparation(t *testing.T) {
	data, err := MarshalCanonical(map[string]bool{"x": true})
	require.NoError(t, err)

	fp, err := Fingerprint(map[string]bool{"x": true})
	require.NoError(t, err)

	assert.Equal(t, hashWithDomain(DomainSnapshot, data), fp)
	assert.NotEqual(t, hashWithDomain("other/v1", data), fp)
}

func TestShortFingerprint(t *testing.T) {
	assert.Equal(t, "abc", ShortFingerprint("abc"))
	assert.Equal(t, "0123456789ab", ShortFingerprint("0123456789abcdef"))
}
