package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func codecNames(results []CodecResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Codec
	}
	return names
}

func rankingReport() *Report {
	return &Report{Results: []CodecResult{
		{Codec: "json", Status: StatusPass, Bytes: 40, EncodeTime: 3 * time.Microsecond},
		{Codec: "bson", Status: StatusEncodeError, EncodeTime: time.Microsecond},
		{Codec: "cbor", Status: StatusPass, Bytes: 20, EncodeTime: 5 * time.Microsecond},
		{Codec: "yaml", Status: StatusDecodeError, Bytes: 20, EncodeTime: 2 * time.Microsecond},
		{Codec: "cue", Status: StatusSkipped},
	}}
}

func TestSizeRanking(t *testing.T) {
	r := rankingReport()
	assert.Equal(t,
		[]string{"cbor", "yaml", "json", "bson", "cue"},
		codecNames(r.SizeRanking()),
		"ascending bytes, ties by name, unencoded last")
}

func TestTimeRanking(t *testing.T) {
	r := rankingReport()
	assert.Equal(t,
		[]string{"yaml", "json", "cbor", "bson", "cue"},
		codecNames(r.TimeRanking()),
		"a fast encode failure does not rank first")
}

func TestRankingsAreComplete(t *testing.T) {
	r := rankingReport()
	assert.Len(t, r.SizeRanking(), len(r.Results))
	assert.Len(t, r.TimeRanking(), len(r.Results))
}

func TestRankingDoesNotReorderResults(t *testing.T) {
	r := rankingReport()
	r.SizeRanking()
	assert.Equal(t, "json", r.Results[0].Codec)
}

func TestReportPass(t *testing.T) {
	r := &Report{Results: []CodecResult{{Codec: "a", Status: StatusPass}}}
	assert.True(t, r.Pass())
	assert.Empty(t, r.Failures())

	r.Results = append(r.Results, CodecResult{Codec: "b", Status: StatusMismatch})
	assert.False(t, r.Pass())
	assert.Equal(t, []string{"b"}, codecNames(r.Failures()))
}

func TestCodecResultEncoded(t *testing.T) {
	assert.True(t, CodecResult{Status: StatusDecodeError}.Encoded())
	assert.True(t, CodecResult{Status: StatusWriteError}.Encoded())
	assert.False(t, CodecResult{Status: StatusEncodeError}.Encoded())
	assert.False(t, CodecResult{Status: StatusSkipped}.Encoded())
	assert.True(t, CodecResult{Status: StatusUnverified}.Encoded())
	assert.False(t, CodecResult{Status: StatusUnverified}.Passed())
}
